package main

import "net/http"

// @Summary		Health check
// @Description	returns the status of the service and the active pipeline settings
// @Tags			Health
// @Produce		json
// @Success		200	{object}	map[string]any
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"status":         "available",
		"version":        "0.1.0",
		"paid_threshold": app.opts.PaidThreshold,
		"tuition_labels": app.opts.TuitionLabels,
		"max_upload_mb":  app.config.maxUploadMB,
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
