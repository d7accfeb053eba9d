package handler

import (
	"net/http"

	"github.com/parlorhub/gameroom-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidMove        = apierr.CodeInvalidMove
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotHost            = apierr.CodeNotHost
	CodeNotYourTurn        = apierr.CodeNotYourTurn
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeRoomNotFound       = apierr.CodeRoomNotFound
	CodeAlreadyInRoom      = apierr.CodeAlreadyInRoom
	CodeNotInRoom          = apierr.CodeNotInRoom
	CodeGameInProgress     = apierr.CodeGameInProgress
	CodeNoGameInProgress   = apierr.CodeNoGameInProgress
	CodeNeedTwoPlayers     = apierr.CodeNeedTwoPlayers
	CodeUnknownGameType    = apierr.CodeUnknownGameType
	CodeGameOver           = apierr.CodeGameOver
	CodeNotInGame          = apierr.CodeNotInGame
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
