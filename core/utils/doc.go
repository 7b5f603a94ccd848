// Package utils provides common utility functions for the item simulator.
// It currently holds loose-type conversion helpers used when normalizing
// request payloads whose JSON numeric types are not fixed.
package utils
