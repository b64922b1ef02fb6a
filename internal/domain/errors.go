package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoAgentResponse = errors.New("agent returned no usable response")
	ErrMissingSetting  = errors.New("missing required setting")
	ErrSecretNotFound  = errors.New("secret not found")
)

// AgentAPIError is returned once the agent client has given up on a request.
// Status is 0 when no HTTP response was ever received.
type AgentAPIError struct {
	Status       int
	ResponseBody string
	Err          error
}

func (e *AgentAPIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("agent api error: %v", e.Err)
		}
		return "agent api error: no response"
	}
	return fmt.Sprintf("agent api error: %d - %s", e.Status, e.ResponseBody)
}

func (e *AgentAPIError) Unwrap() error {
	return e.Err
}

type ParseError struct {
	FilePath string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse prompt %s", e.FilePath)
	}
	return fmt.Sprintf("parse prompt %s: %v", e.FilePath, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type FileNotFoundError struct {
	FilePath string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.FilePath)
}
