// Package constants holds process-wide names shared by the CLI and config loader.
package constants

const (
	AppName        = "dentclinic"
	AppDescription = "Dental clinic management backend"

	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "DENTCLINIC"

	DefaultConfigPath = "./config.yaml"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// HeaderClinicID selects the clinic a request operates on.
const HeaderClinicID = "X-Clinic-ID"
