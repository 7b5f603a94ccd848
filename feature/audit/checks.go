package audit

import (
	"context"
	"fmt"
	"time"

	"item-simulator/core/database"
	charmodels "item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"gorm.io/gorm"
)

// Report contains the results of a full consistency audit.
type Report struct {
	CheckedItems        int      `json:"checked_items"`
	CheckedCharacters   int      `json:"checked_characters"`
	PlacementViolations []string `json:"placement_violations"`
	DanglingReferences  []string `json:"dangling_references"`
	StatMismatches      []string `json:"stat_mismatches"`
	NegativeBalances    []string `json:"negative_balances"`
	SchemaErrors        []string `json:"schema_errors"`
	Passed              bool     `json:"passed"`
	GeneratedAt         string   `json:"generated_at"`
	ExecutionTime       string   `json:"execution_time"`
}

// requiredTables maps game tables to the columns the checks depend on.
var requiredTables = map[string][]string{
	"accounts":    {"account_id"},
	"characters":  {"character_id", "account_id", "health", "power", "money"},
	"inventories": {"inventory_id", "character_id"},
	"equipments":  {"equipment_id", "character_id"},
	"items":       {"item_id", "price", "health", "power", "inventory_id", "equipment_id"},
}

// RunChecks executes every audit check and assembles the report.
func RunChecks(ctx context.Context, db *gorm.DB) (*Report, error) {
	start := time.Now()
	report := &Report{
		PlacementViolations: []string{},
		DanglingReferences:  []string{},
		StatMismatches:      []string{},
		NegativeBalances:    []string{},
		SchemaErrors:        []string{},
	}

	checkSchema(db, report)

	// Data checks are pointless against a broken schema.
	if len(report.SchemaErrors) == 0 {
		if err := checkPlacements(ctx, db, report); err != nil {
			return nil, err
		}
		if err := checkCharacters(ctx, db, report); err != nil {
			return nil, err
		}
	}

	report.Passed = len(report.PlacementViolations) == 0 &&
		len(report.DanglingReferences) == 0 &&
		len(report.StatMismatches) == 0 &&
		len(report.NegativeBalances) == 0 &&
		len(report.SchemaErrors) == 0
	report.GeneratedAt = start.UTC().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).String()
	return report, nil
}

func checkSchema(db *gorm.DB, report *Report) {
	for table, required := range requiredTables {
		columns, err := database.GetTableColumns(db, table)
		if err != nil {
			report.SchemaErrors = append(report.SchemaErrors,
				fmt.Sprintf("%s: %v", table, err))
			continue
		}
		if len(columns) == 0 {
			report.SchemaErrors = append(report.SchemaErrors,
				fmt.Sprintf("%s: table missing", table))
			continue
		}
		present := make(map[string]bool, len(columns))
		for _, col := range columns {
			present[col.Field] = true
		}
		for _, field := range required {
			if !present[field] {
				report.SchemaErrors = append(report.SchemaErrors,
					fmt.Sprintf("%s: missing column %s", table, field))
			}
		}
	}
}

func checkPlacements(ctx context.Context, db *gorm.DB, report *Report) error {
	var items []itemmodels.Item
	if err := db.WithContext(ctx).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	report.CheckedItems = len(items)

	inventories, equipments, err := loadContainers(ctx, db)
	if err != nil {
		return err
	}

	for _, it := range items {
		if it.InventoryID != nil && it.EquipmentID != nil {
			report.PlacementViolations = append(report.PlacementViolations,
				fmt.Sprintf("item %d is both in inventory %d and equipment %d", it.ID, *it.InventoryID, *it.EquipmentID))
		}
		if it.InventoryID != nil {
			if _, ok := inventories[*it.InventoryID]; !ok {
				report.DanglingReferences = append(report.DanglingReferences,
					fmt.Sprintf("item %d references missing inventory %d", it.ID, *it.InventoryID))
			}
		}
		if it.EquipmentID != nil {
			if _, ok := equipments[*it.EquipmentID]; !ok {
				report.DanglingReferences = append(report.DanglingReferences,
					fmt.Sprintf("item %d references missing equipment %d", it.ID, *it.EquipmentID))
			}
		}
	}
	return nil
}

func checkCharacters(ctx context.Context, db *gorm.DB, report *Report) error {
	var characters []charmodels.Character
	if err := db.WithContext(ctx).Find(&characters).Error; err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}
	report.CheckedCharacters = len(characters)

	_, equipments, err := loadContainers(ctx, db)
	if err != nil {
		return err
	}

	// Sum the equipped stat payloads per equipment container.
	type delta struct{ health, power int }
	sums := make(map[uint]delta)
	var equipped []itemmodels.Item
	if err := db.WithContext(ctx).Where("equipment_id IS NOT NULL").Find(&equipped).Error; err != nil {
		return fmt.Errorf("failed to load equipped items: %w", err)
	}
	for _, it := range equipped {
		d := sums[*it.EquipmentID]
		d.health += it.Health
		d.power += it.Power
		sums[*it.EquipmentID] = d
	}

	eqByCharacter := make(map[uint]uint, len(equipments))
	for id, characterID := range equipments {
		eqByCharacter[characterID] = id
	}

	for _, ch := range characters {
		if ch.Money < 0 {
			report.NegativeBalances = append(report.NegativeBalances,
				fmt.Sprintf("character %d has balance %d", ch.ID, ch.Money))
		}

		d := sums[eqByCharacter[ch.ID]]
		wantHealth := charmodels.DefaultHealth + d.health
		wantPower := charmodels.DefaultPower + d.power
		if ch.Health != wantHealth || ch.Power != wantPower {
			report.StatMismatches = append(report.StatMismatches,
				fmt.Sprintf("character %d stored health=%d power=%d, recomputed health=%d power=%d",
					ch.ID, ch.Health, ch.Power, wantHealth, wantPower))
		}
	}
	return nil
}

// loadContainers returns container id -> character id for both container
// tables.
func loadContainers(ctx context.Context, db *gorm.DB) (map[uint]uint, map[uint]uint, error) {
	var invs []charmodels.Inventory
	if err := db.WithContext(ctx).Find(&invs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load inventories: %w", err)
	}
	var eqs []charmodels.Equipment
	if err := db.WithContext(ctx).Find(&eqs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load equipments: %w", err)
	}

	inventories := make(map[uint]uint, len(invs))
	for _, inv := range invs {
		inventories[inv.ID] = inv.CharacterID
	}
	equipments := make(map[uint]uint, len(eqs))
	for _, eq := range eqs {
		equipments[eq.ID] = eq.CharacterID
	}
	return inventories, equipments, nil
}
