// Package validation validates configuration structs with struct tags.
//
//	type Config struct {
//	    Threshold int `mapstructure:"threshold" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// Failures are returned as *errors.AppError with code CONFIG_INVALID; the
// offending fields are listed under the "fields" detail, named after their
// mapstructure keys.
package validation
