package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"spatialdataapi/src/services/features"
)

// The CRUD handlers are kind-parameterized: the same handler body serves
// /api/points and /api/polygons, bound to the matching service at route
// registration time.

func (s *Server) createFeatures(svc *features.FeatureService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var collection FeatureCollectionDTO
		if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
			s.writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		inputs, err := MapRequestToInputs(collection)
		if err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		ids, err := svc.CreateFeatures(r.Context(), inputs)
		if err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		s.writeJSON(w, http.StatusOK, CreateFeaturesResponse{Status: "success", CreatedIDs: ids})
	}
}

func (s *Server) getAllFeatures(svc *features.FeatureService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featureRows, err := svc.GetAllFeatures(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		s.writeJSON(w, http.StatusOK, MapFeaturesToCollection(featureRows))
	}
}

func (s *Server) getFeature(svc *features.FeatureService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r, "id")
		if !ok {
			return
		}

		feature, err := svc.GetFeature(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		s.writeJSON(w, http.StatusOK, MapFeatureToResponse(*feature))
	}
}

func (s *Server) updateFeature(svc *features.FeatureService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r, "id")
		if !ok {
			return
		}

		var feature FeatureDTO
		if err := json.NewDecoder(r.Body).Decode(&feature); err != nil {
			s.writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		input, err := MapRequestToInput(feature)
		if err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		if err := svc.UpdateFeature(r.Context(), id, input); err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		s.writeJSON(w, http.StatusOK, UpdateFeatureResponse{Status: "success", UpdatedID: id})
	}
}

func (s *Server) deleteFeature(svc *features.FeatureService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.pathID(w, r, "id")
		if !ok {
			return
		}

		if err := svc.DeleteFeature(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err, svc.Kind())
			return
		}

		s.writeJSON(w, http.StatusOK, DeleteFeatureResponse{Status: "success", DeletedID: id})
	}
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeDetail(w, http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return id, true
}
