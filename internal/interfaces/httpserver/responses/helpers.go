package responses

import (
	"context"
	"errors"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/vobiz"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/utils/platformerrors"
)

// HandleError maps domain and provider errors to HTTP status codes. The
// ordering matters: registry sentinels first, then provider rejections,
// then transport failures, then the generic platform handler.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()

	switch {
	case errors.Is(err, call.ErrCallNotFound):
		platformerrors.WriteNotFound(c, message)
		return
	case errors.Is(err, call.ErrStateConflict):
		// Recoverable rejection naming the call's current state, so the
		// operator can tell "nothing to transfer" from a fault.
		platformerrors.WriteConflict(c, err.Error())
		return
	case errors.Is(err, call.ErrNoTransferTarget), errors.Is(err, call.ErrNoFromNumber):
		platformerrors.WriteValidationError(c, err.Error())
		return
	}

	var apiErr *vobiz.APIError
	if errors.As(err, &apiErr) {
		// Provider rejected the request; pass its message through intact.
		logger.Warn().Err(apiErr).Msg(message)
		platformerrors.WriteExternalError(c, apiErr.Error())
		return
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn().Err(err).Msg(message)
		platformerrors.WriteTimeoutError(c, "provider unreachable: "+err.Error())
		return
	}

	platformerrors.WriteError(c, err, logger)
}

// HandleNewValidationError rejects a malformed request before it reaches the
// domain layer.
func HandleNewValidationError(c *gin.Context, message string) {
	platformerrors.WriteValidationError(c, message)
}
