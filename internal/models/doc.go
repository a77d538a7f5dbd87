// Package models lists the chat models of the configured translation
// provider so the operator can pick one for --model.
package models
