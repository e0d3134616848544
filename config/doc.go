// Package config loads pipeline configuration from YAML files and the
// environment, in that order, with environment values winning.
package config
