// Package errors contains helper functions and types to work with errors
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError is used when an operation completed without error.
	CategoryNoError Category = iota
	// CategoryDataError The caller sent invalid data, for example a malformed
	// address or amount in a transaction request.
	CategoryDataError
	// CategoryUnauthorized The caller is not authorized to access the requested resource
	CategoryUnauthorized
	// CategoryForbidden The wallet or the user refused the request
	CategoryForbidden
	// CategoryResourceNotFound The caller is attempting to access a resource that does not exist
	CategoryResourceNotFound
	// CategoryPrecondition The operation requires state that is not present (e.g. a connected wallet)
	CategoryPrecondition
	// CategoryDataConflict Another operation of the same kind is already in flight
	CategoryDataConflict
	// CategoryCancelled The operation was cancelled before the wallet answered
	CategoryCancelled
	// CategoryDependencyFailure The wallet or a platform capability failed
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
	// CategoryConnectionTimeout The wallet did not answer in time
	CategoryConnectionTimeout
)

func (c Category) String() string {
	switch c {
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryUnauthorized:
		return "CategoryUnauthorized"
	case CategoryForbidden:
		return "CategoryForbidden"
	case CategoryResourceNotFound:
		return "CategoryResourceNotFound"
	case CategoryPrecondition:
		return "CategoryPrecondition"
	case CategoryDataConflict:
		return "CategoryDataConflict"
	case CategoryCancelled:
		return "CategoryCancelled"
	case CategoryDependencyFailure:
		return "CategoryDependencyFailure"
	case CategoryConnectionTimeout:
		return "CategoryConnectionTimeout"
	default:
		return "CategoryGeneralError"
	}
}

// Code is the machine readable error kind exposed to callers.
type Code string

const (
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeNotConnected        Code = "NOT_CONNECTED"
	CodeOperationInProgress Code = "OPERATION_IN_PROGRESS"
	CodeConnectionTimeout   Code = "CONNECTION_TIMEOUT"
	CodeTransactionTimeout  Code = "TRANSACTION_TIMEOUT"
	CodeSignDataTimeout     Code = "SIGN_DATA_TIMEOUT"
	CodeUserRejected        Code = "USER_REJECTED"
	CodeWalletError         Code = "WALLET_ERROR"
	CodeProtocolError       Code = "PROTOCOL_ERROR"
	CodeProofInvalid        Code = "PROOF_INVALID"
	CodeLinkingFailed       Code = "LINKING_FAILED"
	CodeUnknownWallet       Code = "UNKNOWN_WALLET"
	CodeCancelled           Code = "CANCELLED"
	CodeClientDestroyed     Code = "CLIENT_DESTROYED"
	CodeStorageError        Code = "STORAGE_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInternal            Code = "INTERNAL"
)

// ServiceError represents service specific type that
// is used all over the services.
type ServiceError struct {
	Category Category
	Code     Code
	Message  string
	// Recovery is a human readable suggestion on how to get out of the error.
	Recovery string
	Err      error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is implements the custom condition to check an error is equal to a service error
func (err ServiceError) Is(target error) bool {
	return err.Message == target.Error()
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category == cat {
		return true
	}
	return false
}

// IsCode checks that provided error is a ServiceError with desired Code
func IsCode(err error, code Code) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Code == code {
		return true
	}
	return false
}

// CodeOf returns the Code of a ServiceError, or CodeInternal for any other error.
func CodeOf(err error) Code {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return CodeInternal
}

// RecoveryOf returns the recovery suggestion carried by err, if any.
func RecoveryOf(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Recovery
	}
	return ""
}

// IsInternalError checks that provided error is a Internal system error
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && (svcErr.Category < CategoryDependencyFailure) {
		return false
	}
	return true
}

func newError(cat Category, code Code, err error, message, recovery string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{
		Category: cat,
		Code:     code,
		Message:  message,
		Recovery: recovery,
		Err:      err,
	}
}

// GeneralError returns a general service error
// this error mesage sent to the user is "Internal Server Error"
// the error passed is logged in the logger
func GeneralError(err error) error {
	return newError(CategoryGeneralError, CodeInternal, err, "Internal Server Error",
		"retry the operation; report the issue if it persists")
}

// ResourceNotFoundError returns an error with category ResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, CodeNotFound, err, message,
		"check the identifier and try again")
}

// BadRequestError returns an error with category DataError.
// Used for synchronous request validation failures.
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, CodeInvalidRequest, err, message,
		"fix the request fields and submit again")
}

// UnAuthorizedError returns an error with category CategoryUnauthorized
func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, CodeUnauthorized, err, message,
		"provide a valid bearer token")
}

// NotConnectedError is returned when an operation needs a connected wallet.
func NotConnectedError(err error) error {
	return newError(CategoryPrecondition, CodeNotConnected, err, "wallet not connected",
		"connect a wallet before sending requests")
}

// InProgressError returns an error with category CategoryDataConflict.
// Raised when a second operation of the same kind is attempted.
func InProgressError(err error, message string) error {
	return newError(CategoryDataConflict, CodeOperationInProgress, err, message,
		"wait for the pending request to finish or time out")
}

// TimeoutError returns an error with category CategoryConnectionTimeout.
func TimeoutError(err error, code Code, message string) error {
	return newError(CategoryConnectionTimeout, code, err, message,
		"open the wallet app again and retry; make sure it returns to this app")
}

// UserRejectedError is returned when the user declines the request in the wallet.
func UserRejectedError(err error, message string) error {
	return newError(CategoryForbidden, CodeUserRejected, err, message,
		"the request was declined in the wallet; retry if that was not intended")
}

// WalletError is returned when the wallet answers with a non-rejection error.
func WalletError(err error, message string) error {
	return newError(CategoryDependencyFailure, CodeWalletError, err, message,
		"check the wallet app for details and retry")
}

// ProtocolError is returned for malformed or inconsistent wallet responses.
func ProtocolError(err error, message string) error {
	return newError(CategoryDependencyFailure, CodeProtocolError, err, message,
		"update the wallet app and retry")
}

// ProofError is returned when the connection proof fails verification.
func ProofError(err error, message string) error {
	return newError(CategoryForbidden, CodeProofInvalid, err, message,
		"reconnect from a trusted wallet app")
}

// LinkingError is returned when the wallet deep link could not be opened.
func LinkingError(err error, message string) error {
	return newError(CategoryDependencyFailure, CodeLinkingFailed, err, message,
		"install the wallet app or select another wallet")
}

// UnknownWalletError is returned when a wallet name is not in the registry.
func UnknownWalletError(err error, message string) error {
	return newError(CategoryDataError, CodeUnknownWallet, err, message,
		"pick one of the supported wallets")
}

// CancelledError is returned when a pending operation is cancelled.
func CancelledError(err error, message string) error {
	return newError(CategoryCancelled, CodeCancelled, err, message,
		"start the operation again")
}

// DestroyedError is returned to callers waiting on a client that was destroyed.
func DestroyedError(err error) error {
	return newError(CategoryCancelled, CodeClientDestroyed, err, "client destroyed",
		"create a new client")
}

// StorageError wraps storage capability failures. These are logged, not surfaced.
func StorageError(err error, message string) error {
	return newError(CategoryDependencyFailure, CodeStorageError, err, message,
		"the session will not survive an app restart")
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryPrecondition:
		return http.StatusPreconditionFailed
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryCancelled:
		return http.StatusRequestTimeout
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	case CategoryGeneralError:
		return http.StatusInternalServerError
	case CategoryConnectionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
