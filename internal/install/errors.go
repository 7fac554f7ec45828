package install

import (
	"errors"
	"fmt"
)

// ErrInstallationInProgress is returned when an installation is requested
// while another one is running.
var ErrInstallationInProgress = errors.New("an installation is already in progress")

// ErrPrivateAssetDenied is the cause of an authorization failure.
var ErrPrivateAssetDenied = errors.New("private assets can only be installed into cloud projects")

// Kind classifies installation failures.
type Kind int

const (
	KindFetch Kind = iota + 1
	KindAuthorization
	KindDependencyResolution
	KindExtensionInstall
	KindAssetInstantiation
	KindResourceFetch
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindAuthorization:
		return "authorization"
	case KindDependencyResolution:
		return "dependency resolution"
	case KindExtensionInstall:
		return "extension install"
	case KindAssetInstantiation:
		return "asset instantiation"
	case KindResourceFetch:
		return "resource fetch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every failed installation.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindAuthorization:
		return "You need to save this project as a cloud project to install this asset. Please save your project and try again."
	case KindFetch:
		return "There was an error while fetching the asset(s). Verify your internet connection or try again later.\n" + e.Err.Error()
	case KindDependencyResolution, KindExtensionInstall:
		return "Unable to download and install the extensions used by this asset. Verify your internet connection or try again later.\n" + e.Err.Error()
	case KindResourceFetch:
		return "The asset was added but some of its resources could not be downloaded.\n" + e.Err.Error()
	default:
		return "There was an error while installing the asset(s).\n" + e.Err.Error()
	}
}

func failure(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of an installation error, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
