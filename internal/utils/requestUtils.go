package utils

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetObjectIDFromVars extracts and parses an ObjectID from mux.Vars.
func GetObjectIDFromVars(w http.ResponseWriter, r *http.Request, paramName string) (primitive.ObjectID, error) {
	vars := mux.Vars(r)
	idStr := vars[paramName]
	if idStr == "" {
		SendJSONError(w, "Missing ID parameter", http.StatusBadRequest)
		return primitive.NilObjectID, errors.New("missing ID parameter")
	}

	objID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		SendJSONError(w, "Invalid ID format", http.StatusBadRequest)
		return primitive.NilObjectID, errors.New("invalid ID format")
	}
	return objID, nil
}

// GetPageFromQuery reads the 1-based "page" query parameter, defaulting to 1.
func GetPageFromQuery(w http.ResponseWriter, r *http.Request) (int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		SendJSONError(w, "Page query should be an integer", http.StatusBadRequest)
		return 0, errors.New("invalid page parameter")
	}
	return page, nil
}

// GetFloatFromQuery reads an optional float query parameter.
func GetFloatFromQuery(w http.ResponseWriter, r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		SendJSONError(w, name+" query should be a number", http.StatusBadRequest)
		return 0, errors.New("invalid " + name + " parameter")
	}
	return f, nil
}
