package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/ajans/visit-form/pkg/model"
	"github.com/sirupsen/logrus"
)

func writeError(w http.ResponseWriter, httpStatus int, err error) {
	logrus.Errorf("got a response error: %v", err)
	o := model.ErrorResponse{
		Status:  httpStatus,
		Message: err.Error(),
	}
	writeJSON(w, httpStatus, o)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, httpStatus int, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		httpStatus = http.StatusInternalServerError
		res = []byte(`{"status":500,"msg":"encoding response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, _ = w.Write(res)
}
