// Package utils contains the shared config and math helpers.
package utils

// An AttributeMap is a convenience wrapper for pre-validated attributes from
// a configuration source, usually decoded JSON.
type AttributeMap map[string]interface{}

// Has returns whether the given name is in the map.
func (am AttributeMap) Has(name string) bool {
	_, has := am[name]
	return has
}
