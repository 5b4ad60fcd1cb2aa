package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"propertylisting/src/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func parseListingID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid listing id %q", raw)
	}
	return id, nil
}

func optionalString(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	value := values.Get(key)
	return &value
}

func optionalInt(values url.Values, key string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format", key)
	}
	return value, nil
}

func optionalDecimal(values url.Values, key string) (*decimal.Decimal, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", key)
	}
	return &value, nil
}

func parseListingQuery(values url.Values) (domain.ListingQuery, error) {
	var query domain.ListingQuery
	var err error

	if query.Page, err = optionalInt(values, "page"); err != nil {
		return query, err
	}
	if query.PageSize, err = optionalInt(values, "pageSize"); err != nil {
		return query, err
	}
	if query.MinPrice, err = optionalDecimal(values, "minPrice"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = optionalDecimal(values, "maxPrice"); err != nil {
		return query, err
	}

	query.City = optionalString(values, "city")
	query.Type = optionalString(values, "type")

	return query, nil
}

func (s *Server) ListListings(w http.ResponseWriter, r *http.Request) {
	query, err := parseListingQuery(r.URL.Query())
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.listingService.List(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := parseListingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := s.listingService.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) CreateListing(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing, err := s.listingService.Create(r.Context(), request)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	email, _ := AuthenticatedEmail(r.Context())
	s.logger.Info("listing created via api", "listing_id", listing.ID, "by", email)

	w.Header().Set("Location", "/api/v1/listings/"+listing.ID.String())
	writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := parseListingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var request domain.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing, err := s.listingService.Update(r.Context(), id, request)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := parseListingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.listingService.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	email, _ := AuthenticatedEmail(r.Context())
	s.logger.Info("listing deleted via api", "listing_id", id, "by", email)

	w.WriteHeader(http.StatusNoContent)
}
