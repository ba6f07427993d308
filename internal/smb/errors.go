// Package smb provides the SMB session used to filter resources on remote shares.
package smb

import (
	"errors"
	"strings"
)

// Error categories
const (
	ErrorCategoryProtocol = "PROTOCOL"
	ErrorCategoryAuth     = "AUTH"
	ErrorCategoryNetwork  = "NETWORK"
	ErrorCategoryUnknown  = "UNKNOWN"
)

// Common errors
var (
	ErrNotConnected     = errors.New("not connected to SMB server")
	ErrShareNotSet      = errors.New("share not set")
	ErrConnectionFailed = errors.New("failed to connect to SMB server")
	ErrAuthFailed       = errors.New("authentication failed")
)

// ClassifyError maps an SMB error onto a coarse category for logging.
func ClassifyError(err error) string {
	if err == nil {
		return ErrorCategoryUnknown
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "not supported") ||
		strings.Contains(errStr, "dialect") ||
		strings.Contains(errStr, "unsupported") {
		return ErrorCategoryProtocol
	}

	if strings.Contains(errStr, "logon failure") ||
		strings.Contains(errStr, "invalid username") ||
		strings.Contains(errStr, "invalid password") ||
		strings.Contains(errStr, "authentication") ||
		strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "account disabled") ||
		strings.Contains(errStr, "locked out") ||
		strings.Contains(errStr, "password expired") {
		return ErrorCategoryAuth
	}

	if strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "unreachable") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "timed out") ||
		strings.Contains(errStr, "bad network name") {
		return ErrorCategoryNetwork
	}

	return ErrorCategoryUnknown
}
