package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SidedocError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *SidedocError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file is invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SidedocError {
	return New(CategoryConfig, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Language rule errors

func UnsupportedLanguage(ext string) *SidedocError {
	return New(CategoryLanguage, SeverityError, "no language rules registered for extension").
		WithContext("extension", ext)
}

func LanguageRuleInvalid(name, reason string) *SidedocError {
	return New(CategoryLanguage, SeverityFatal, "language rule set is invalid").
		WithContext("language", name).
		WithContext("reason", reason)
}

// Highlighter errors

func HighlighterUnavailable(binary string, cause error) *SidedocError {
	return Wrap(cause, CategoryHighlight, SeverityFatal, "highlighter process could not be started").
		WithContext("binary", binary)
}

func HighlighterInput(binary string, cause error) *SidedocError {
	return Wrap(cause, CategoryHighlight, SeverityFatal, "could not write code to highlighter stdin").
		WithContext("binary", binary)
}

// Filesystem errors

func ReadFailed(path string, cause error) *SidedocError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "source file could not be read").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *SidedocError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output file could not be written").
		WithContext("path", path)
}

// Rendering errors

func RenderFailed(what string, cause error) *SidedocError {
	return Wrap(cause, CategoryRender, SeverityFatal, "rendering failed").
		WithContext("what", what)
}
