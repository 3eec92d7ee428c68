package session

import "errors"

var (
	// ErrInvalidTag is returned before any I/O when a tag fails the
	// ^[a-z0-9_]{3,50}$ pattern.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrNotAuthenticated is returned by operations that require an
	// authenticated session. No state change occurs.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoStoredCredentials is returned by QuickLogin when no prior
	// register/login left a user id and tag on this device.
	ErrNoStoredCredentials = errors.New("no stored credentials")

	// ErrBiometricsUnavailable is returned by QuickLogin on devices
	// without biometric capability.
	ErrBiometricsUnavailable = errors.New("biometrics unavailable")

	// ErrBiometricFailed is returned when the biometric prompt completes
	// negatively.
	ErrBiometricFailed = errors.New("biometric authentication failed")
)
