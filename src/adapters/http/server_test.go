package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	httpadapter "propertylisting/src/adapters/http"
	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
	"propertylisting/src/services/auth"
	"propertylisting/src/services/listings"
	"propertylisting/src/test_artefacts/memstore"
	"propertylisting/src/test_artefacts/stubs"

	"github.com/google/uuid"
)

var _ = Describe("Server", func() {
	var (
		ctx         context.Context
		store       *memstore.ListingStore
		tokens      *auth.TokenIssuer
		handler     http.Handler
		bearer      string
		healthError error
	)

	do := func(method string, path string, body interface{}, token string) *httptest.ResponseRecorder {
		var payload bytes.Buffer
		if body != nil {
			switch b := body.(type) {
			case string:
				payload.WriteString(b)
			default:
				Expect(json.NewEncoder(&payload).Encode(b)).To(Succeed())
			}
		}

		request := httptest.NewRequest(method, path, &payload)
		request.Header.Set("Content-Type", "application/json")
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		logger := slog.New(slog.DiscardHandler)

		store = memstore.NewListingStore()
		credentials := memstore.NewCredentialStore()
		tokens, err = auth.NewTokenIssuer("http-test-key", "property-listing", time.Hour)
		Expect(err).NotTo(HaveOccurred())

		listingService := listings.NewListingService(logger, store, nil)
		authService := auth.NewAuthService(logger, credentials, tokens)
		_, err = authService.SeedCredential(ctx, "user@example.com", "password123")
		Expect(err).NotTo(HaveOccurred())

		healthError = nil
		server := httpadapter.NewServer(logger, ":0", listingService, authService, tokens, httpadapter.HealthCheck{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return healthError },
		})
		handler = server.Handler()

		token, err := tokens.Issue("user@example.com")
		Expect(err).NotTo(HaveOccurred())
		bearer = token.Token
	})

	Describe("POST /api/v1/auth/authenticate", func() {
		It("returns a token for valid credentials", func() {
			// ACT
			response := do(http.MethodPost, "/api/v1/auth/authenticate", map[string]string{
				"email":    "user@example.com",
				"password": "password123",
			}, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			var token domain.AuthToken
			Expect(json.Unmarshal(response.Body.Bytes(), &token)).To(Succeed())
			email, err := tokens.Verify(token.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(email).To(Equal("user@example.com"))
		})

		It("answers 401 for a wrong password", func() {
			// ACT
			response := do(http.MethodPost, "/api/v1/auth/authenticate", map[string]string{
				"email":    "user@example.com",
				"password": "nope",
			}, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("POST /api/v1/listings", func() {
		It("creates the listing and answers 201", func() {
			// ARRANGE
			request := stubs.NewCreateListingRequestStub().WithCity("New York").Get()

			// ACT
			response := do(http.MethodPost, "/api/v1/listings", request, bearer)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusCreated))
			var created domain.ListingResponse
			Expect(json.Unmarshal(response.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).NotTo(Equal(uuid.Nil))
			Expect(created.City).To(Equal("New York"))
			Expect(response.Header().Get("Location")).To(Equal("/api/v1/listings/" + created.ID.String()))
		})

		It("answers 401 without a bearer token", func() {
			// ACT
			response := do(http.MethodPost, "/api/v1/listings", stubs.NewCreateListingRequestStub().Get(), "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusUnauthorized))
			Expect(store.Len()).To(Equal(0))
		})

		It("answers 401 with a forged token", func() {
			// ACT
			response := do(http.MethodPost, "/api/v1/listings", stubs.NewCreateListingRequestStub().Get(), "forged.token.value")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusUnauthorized))
		})

		It("answers 400 with every violation", func() {
			// ARRANGE
			request := stubs.NewCreateListingRequestStub().WithTitle("").WithoutPrice().Get()

			// ACT
			response := do(http.MethodPost, "/api/v1/listings", request, bearer)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusBadRequest))
			var body struct {
				Violations []domain.FieldViolation `json:"violations"`
			}
			Expect(json.Unmarshal(response.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Violations).To(ContainElements(
				domain.FieldViolation{Field: "title", Message: "Title is required"},
				domain.FieldViolation{Field: "price", Message: "Price is required"},
			))
		})

		It("answers 400 for a malformed body", func() {
			// ACT
			response := do(http.MethodPost, "/api/v1/listings", `{"title":`, bearer)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/v1/listings/{id}", func() {
		It("returns the listing without authentication", func() {
			// ARRANGE
			listing := stubs.NewListingStub().Get()
			store.Put(listing)

			// ACT
			response := do(http.MethodGet, "/api/v1/listings/"+listing.ID.String(), nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			var found domain.ListingResponse
			Expect(json.Unmarshal(response.Body.Bytes(), &found)).To(Succeed())
			Expect(found.ID).To(Equal(listing.ID))
		})

		It("is also served under the properties path", func() {
			// ARRANGE
			listing := stubs.NewListingStub().Get()
			store.Put(listing)

			// ACT
			response := do(http.MethodGet, "/api/v1/properties/"+listing.ID.String(), nil, "")
			unauthorized := do(http.MethodDelete, "/api/v1/properties/"+listing.ID.String(), nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(unauthorized.Code).To(Equal(http.StatusUnauthorized))
		})

		It("answers 404 for an unknown id", func() {
			// ACT
			response := do(http.MethodGet, "/api/v1/listings/"+uuid.NewString(), nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusNotFound))
		})

		It("answers 400 for a malformed id", func() {
			// ACT
			response := do(http.MethodGet, "/api/v1/listings/not-a-uuid", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/v1/listings", func() {
		BeforeEach(func() {
			base := time.Now().Add(-time.Hour)
			store.Put(
				stubs.NewListingStub().WithCity("New York").WithPrice(250000).WithType(entities.ListingTypeApartment).WithCreatedAt(base).Get(),
				stubs.NewListingStub().WithCity("Los Angeles").WithPrice(400000).WithType(entities.ListingTypeHouse).WithCreatedAt(base.Add(time.Minute)).Get(),
			)
		})

		It("applies filters from the query string", func() {
			// ACT
			response := do(http.MethodGet, "/api/v1/listings?city=york&maxPrice=300000&type=apartment", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			var page domain.ListingPage
			Expect(json.Unmarshal(response.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].City).To(Equal("New York"))
			Expect(page.TotalElements).To(Equal(int64(1)))
		})

		It("answers 400 for a malformed number", func() {
			// ACT
			response := do(http.MethodGet, "/api/v1/listings?minPrice=cheap", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers 400 for a malformed page", func() {
			// ACT
			response := do(http.MethodGet, "/api/v1/listings?page=first", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/v1/listings/{id}", func() {
		It("applies the patch", func() {
			// ARRANGE
			listing := stubs.NewListingStub().WithCity("New York").Get()
			store.Put(listing)

			// ACT
			response := do(http.MethodPut, "/api/v1/listings/"+listing.ID.String(), map[string]interface{}{"city": "Los Angeles"}, bearer)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
			var updated domain.ListingResponse
			Expect(json.Unmarshal(response.Body.Bytes(), &updated)).To(Succeed())
			Expect(updated.City).To(Equal("Los Angeles"))
			Expect(updated.Title).To(Equal(listing.Title))
		})

		It("answers 404 for an unknown id", func() {
			// ACT
			response := do(http.MethodPatch, "/api/v1/listings/"+uuid.NewString(), map[string]interface{}{"city": "X"}, bearer)

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /api/v1/listings/{id}", func() {
		It("answers 204 and then 404", func() {
			// ARRANGE
			listing := stubs.NewListingStub().Get()
			store.Put(listing)

			// ACT
			first := do(http.MethodDelete, "/api/v1/listings/"+listing.ID.String(), nil, bearer)
			second := do(http.MethodDelete, "/api/v1/listings/"+listing.ID.String(), nil, bearer)

			// ASSERT
			Expect(first.Code).To(Equal(http.StatusNoContent))
			Expect(second.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("store failures", func() {
		It("answers 500 with the generic message", func() {
			// ARRANGE
			store.FailWith(errors.New("connection reset"))

			// ACT
			response := do(http.MethodGet, "/api/v1/listings", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusInternalServerError))
			Expect(response.Body.String()).To(ContainSubstring(domain.ErrUnavailableServer.Error()))
			Expect(response.Body.String()).NotTo(ContainSubstring("connection reset"))
		})
	})

	Describe("GET /healthz", func() {
		It("answers 200 when dependencies are up", func() {
			// ACT
			response := do(http.MethodGet, "/healthz", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusOK))
		})

		It("answers 503 when a dependency is down", func() {
			// ARRANGE
			healthError = errors.New("down")

			// ACT
			response := do(http.MethodGet, "/healthz", nil, "")

			// ASSERT
			Expect(response.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
