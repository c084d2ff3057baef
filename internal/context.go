package internal

// A private type to prevent key collisions in context.
type setterKeyType struct{}

// SetterKey is the key used to store the request scoped query setter in the request context.
var SetterKey = setterKeyType{}
