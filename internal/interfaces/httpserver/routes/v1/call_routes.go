package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domaincall "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/domain/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/metrics"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/handlers"
	callreq "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/requests/call"
	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/responses"
	callres "github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/interfaces/httpserver/responses/call"
)

// RegisterCallRoutes registers the call management routes.
func RegisterCallRoutes(router gin.IRoutes, handler *handlers.CallHandler) {
	router.POST("/calls", initiateCall(handler))
	router.GET("/calls", listCalls(handler))
	router.GET("/calls/:id", getCall(handler))
	router.POST("/calls/:id/transfer", requestTransfer(handler))
}

// initiateCall godoc
// @Summary      Initiate an outbound call
// @Description  Places an outbound call to the given number and registers a session for it.
// @Tags         Calls API
// @Accept       json
// @Produce      json
// @Param        request body callreq.InitiateCallRequest true "Call parameters"
// @Success      201 {object} callres.InitiateCallResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Failure      504 {object} responses.ErrorResponse
// @Router       /calls [post]
func initiateCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.InitiateCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewValidationError(c, "invalid request body: "+err.Error())
			return
		}

		result, err := handler.InitiateCall(c.Request.Context(), &domaincall.InitiateCallRequest{
			To:   req.To,
			From: req.From,
			Body: req.Body,
		})
		if err != nil {
			responses.HandleError(c, err, "failed to initiate call")
			return
		}

		c.JSON(http.StatusCreated, callres.NewInitiateCallResponse(result))
	}
}

// listCalls godoc
// @Summary      List call sessions
// @Description  Lists all tracked call sessions in creation order.
// @Tags         Calls API
// @Produce      json
// @Success      200 {object} callres.ListCallsResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /calls [get]
func listCalls(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := handler.ListCalls(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list calls")
			return
		}

		c.JSON(http.StatusOK, callres.NewListCallsResponse(sessions))
	}
}

// getCall godoc
// @Summary      Get a call session
// @Description  Retrieves the current state of a call session by its provider call ID.
// @Tags         Calls API
// @Produce      json
// @Param        id path string true "Call ID"
// @Success      200 {object} callres.CallResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /calls/{id} [get]
func getCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := handler.GetCall(c.Request.Context(), c.Param("id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get call")
			return
		}

		c.JSON(http.StatusOK, callres.NewCallResponse(sess))
	}
}

// requestTransfer godoc
// @Summary      Transfer a call to a human operator
// @Description  Arms and executes a transfer of an active call to the given target number. A call can be transferred at most once.
// @Tags         Calls API
// @Accept       json
// @Produce      json
// @Param        id path string true "Call ID"
// @Param        request body callreq.TransferRequest false "Transfer parameters"
// @Success      200 {object} callres.TransferResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Failure      504 {object} responses.ErrorResponse
// @Router       /calls/{id}/transfer [post]
func requestTransfer(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.TransferRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				responses.HandleNewValidationError(c, "invalid request body: "+err.Error())
				return
			}
		}

		result, err := handler.RequestTransfer(c.Request.Context(), c.Param("id"), req.Target)
		if err != nil {
			metrics.RecordTransfer("rejected")
			responses.HandleError(c, err, "failed to transfer call")
			return
		}

		metrics.RecordTransfer("accepted")
		c.JSON(http.StatusOK, callres.NewTransferResponse(result))
	}
}
