package handlers

import (
	"net/http"

	"github.com/paystream-demos/advance-app/internal/advance"
	"github.com/paystream-demos/advance-app/internal/version"
)

// HandleVersion godoc
//
//	@Summary	Build information
//	@Tags		Common
//	@Produce	json
//	@Success	200	{object}	version.Info
//	@Router		/version [get]
func HandleVersion(w http.ResponseWriter, r *http.Request) {
	advance.RespondWithJSONPayload(w, http.StatusOK, version.Get())
}
