// Package config loads the optional paperscore configuration file.
//
// The file is YAML. After parsing it is unified with an embedded CUE
// definition that closes the set of fields, constrains their values and
// supplies defaults, so a missing file and an empty file both yield
// Default().
package config
