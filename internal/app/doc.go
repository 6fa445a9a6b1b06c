// Package app wires stores, services and relay clients into the object
// graph the CLI runs on.
package app
