package controllers

// Exported for the external test package.
var GenerateTokenForTest = generateToken
