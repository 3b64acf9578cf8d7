// Package errors provides the classified error type used across siteconf.
//
// A ClassifiedError carries a category (config, validation, not_found,
// filesystem, runtime, internal), a severity, optional structured fields and
// a hint for the user. The CLI adapter maps categories to exit codes.
//
//	err := errors.WrapError(readErr, errors.CategoryConfig, "failed to read config file").
//		WithContext("path", path).
//		Build()
package errors
