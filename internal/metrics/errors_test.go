package metrics

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Test error definitions for error classification tests.
var (
	errContextDeadline   = errors.New("context deadline exceeded")
	errRequestTimeout    = errors.New("request timeout")
	errConnectionRefused = errors.New("dial tcp: connection refused")
	errNoSuchHost        = errors.New("no such host")
	errRandomError       = errors.New("some random error")
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	gr := schema.GroupResource{Group: "gerrit.k8s.lex.la", Resource: "gerritclusters"}

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "missing reference",
			err:      errors.Mark(errors.New("failed to get GerritCluster"), config.ErrReferenceNotFound),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "duplicate resource id",
			err:      errors.Wrap(workflow.ErrDuplicateResourceID, `node "gerrits"`),
			expected: ErrorTypeDuplicateResourceID,
		},
		{
			name:     "ownership conflict",
			err:      errors.Wrap(workflow.ErrOwnershipConflict, "ConfigMap default/x"),
			expected: ErrorTypeOwnershipConflict,
		},
		{
			name:     "graph cycle",
			err:      errors.Wrap(workflow.ErrGraphCycle, "a -> b -> a"),
			expected: ErrorTypeInvalidGraph,
		},
		{
			name:     "api conflict",
			err:      apierrors.NewConflict(gr, "main", errRandomError),
			expected: ErrorTypeConflict,
		},
		{
			name:     "api not found",
			err:      apierrors.NewNotFound(gr, "main"),
			expected: ErrorTypeNotFound,
		},
		{
			name:     "api forbidden",
			err:      apierrors.NewForbidden(gr, "main", errRandomError),
			expected: ErrorTypeAuth,
		},
		{
			name:     "api throttled",
			err:      apierrors.NewTooManyRequests("slow down", 1),
			expected: ErrorTypeRateLimit,
		},
		{
			name:     "api internal error",
			err:      apierrors.NewInternalError(errRandomError),
			expected: ErrorTypeServerError,
		},
		{
			name:     "wrapped api error",
			err:      errors.Wrap(apierrors.NewConflict(gr, "main", errRandomError), "failed to update status"),
			expected: ErrorTypeConflict,
		},
		{
			name:     "timeout error",
			err:      errContextDeadline,
			expected: ErrorTypeTimeout,
		},
		{
			name:     "timeout error variant",
			err:      errRequestTimeout,
			expected: ErrorTypeTimeout,
		},
		{
			name:     "network error connection refused",
			err:      errConnectionRefused,
			expected: ErrorTypeNetwork,
		},
		{
			name:     "network error no such host",
			err:      errNoSuchHost,
			expected: ErrorTypeNetwork,
		},
		{
			name:     "unknown error",
			err:      errRandomError,
			expected: ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := ClassifyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestClassifyStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected string
	}{
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusGatewayTimeout, ErrorTypeTimeout},
		{http.StatusInternalServerError, ErrorTypeServerError},
		{http.StatusServiceUnavailable, ErrorTypeServerError},
		{http.StatusBadRequest, ErrorTypeClientError},
		{http.StatusNotFound, ErrorTypeClientError},
		{http.StatusOK, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ClassifyStatusCode(tt.code))
		})
	}
}
