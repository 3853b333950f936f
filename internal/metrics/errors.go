package metrics

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Error type constants for metrics labels.
const (
	ErrorTypeNotFound            = "not_found"
	ErrorTypeDuplicateResourceID = "duplicate_resource_id"
	ErrorTypeOwnershipConflict   = "ownership_conflict"
	ErrorTypeInvalidGraph        = "invalid_graph"
	ErrorTypeConflict            = "conflict"
	ErrorTypeAuth                = "auth"
	ErrorTypeRateLimit           = "rate_limit"
	ErrorTypeServerError         = "server_error"
	ErrorTypeClientError         = "client_error"
	ErrorTypeTimeout             = "timeout"
	ErrorTypeNetwork             = "network"
	ErrorTypeUnknown             = "unknown"
)

// ClassifyError classifies a reconcile error for metrics labeling.
// Returns an empty string for nil errors.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, config.ErrReferenceNotFound):
		return ErrorTypeNotFound
	case errors.Is(err, workflow.ErrDuplicateResourceID):
		return ErrorTypeDuplicateResourceID
	case errors.Is(err, workflow.ErrOwnershipConflict):
		return ErrorTypeOwnershipConflict
	case errors.Is(err, workflow.ErrGraphCycle),
		errors.Is(err, workflow.ErrDuplicateNode),
		errors.Is(err, workflow.ErrUnknownDependency),
		errors.Is(err, workflow.ErrInvalidNode):
		return ErrorTypeInvalidGraph
	}

	var status apierrors.APIStatus
	if errors.As(err, &status) {
		if apierrors.IsConflict(err) {
			return ErrorTypeConflict
		}

		if apierrors.IsNotFound(err) {
			return ErrorTypeNotFound
		}

		return ClassifyStatusCode(int(status.Status().Code))
	}

	// Fallback for transport errors based on error message
	return classifyByErrorMessage(err.Error())
}

// ClassifyStatusCode classifies an HTTP status code for metrics labeling.
func ClassifyStatusCode(statusCode int) string {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrorTypeAuth
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode == http.StatusGatewayTimeout || statusCode == http.StatusRequestTimeout:
		return ErrorTypeTimeout
	case statusCode >= http.StatusInternalServerError && statusCode < 600:
		return ErrorTypeServerError
	case statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError:
		return ErrorTypeClientError
	default:
		return ErrorTypeUnknown
	}
}

func classifyByErrorMessage(errStr string) string {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "timeout") || strings.Contains(errLower, "deadline"):
		return ErrorTypeTimeout
	case strings.Contains(errLower, "connection refused") || strings.Contains(errLower, "no such host"):
		return ErrorTypeNetwork
	default:
		return ErrorTypeUnknown
	}
}
