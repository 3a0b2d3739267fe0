package model

// Environment names used in config and server setup.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries per-request caller identity through the usecase layer.
type Scope struct {
	UserID string
}
