package sessiongate

import "errors"

var (
	// ErrInvalidCredentials is returned by [Manager.Login] when the remote API
	// rejects the supplied credentials. Session state is left unchanged.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNetworkFailure is returned when a remote call could not complete.
	// Session state is left as it was before the attempt.
	ErrNetworkFailure = errors.New("network failure")
	// ErrUnauthorized marks a 401 response from any downstream call. The
	// manager resolves it by clearing persisted state, never by propagating it
	// to rendering code.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAuthenticated is returned by operations that require an active
	// session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrManagerNotReady is returned when a Manager method is called before
	// [Manager.Init] has completed.
	ErrManagerNotReady = errors.New("session manager not initialized")
	// ErrManagerDestroyed is returned when a Manager method is called after
	// [Manager.Destroy].
	ErrManagerDestroyed = errors.New("session manager destroyed")
	// ErrStorageUnavailable wraps failures of the persistent key-value backend.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrBuilderUsed is returned when [Builder.Build] is called twice.
	ErrBuilderUsed = errors.New("builder already used")
)
