// Package config loads and validates the podhaul configuration file. All
// values have working defaults; a missing config file is not an error.
package config
