package bind

// Test-only exports for internal functions.
var BuildSteps = (*Binder).buildSteps
