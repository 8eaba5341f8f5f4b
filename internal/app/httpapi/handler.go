// Package httpapi exposes the storefront REST API. It owns the DTO
// conversions and the mapping from domain errors to status codes; the
// services below it never see transport concerns.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	app "github.com/shopworks/storefront/internal/app"
	"github.com/shopworks/storefront/internal/app/metrics"
	"github.com/shopworks/storefront/internal/app/services/items"
	"github.com/shopworks/storefront/internal/app/services/users"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app  *app.Application
	hash PasswordHasher
}

// NewHandler returns a mux exposing the storefront REST API. A nil hasher
// defaults to bcrypt.
func NewHandler(application *app.Application, hasher PasswordHasher) http.Handler {
	if hasher == nil {
		hasher = BcryptPassword
	}
	h := &handler{app: application, hash: hasher}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.root)
	mux.HandleFunc("/healthz", h.health)
	mux.HandleFunc("/items", h.items)
	mux.HandleFunc("/users", h.users)
	mux.HandleFunc("/users/", h.userResources)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Thanks for shopping at Nile!"})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) items(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var payload CreateItemRequest
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		created, err := h.app.Items.Create(r.Context(), itemFromDTO(payload))
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, itemToDTO(created))

	case http.MethodGet:
		list, err := h.app.Items.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp := AllItemsResponse{Items: make([]CreateItemResponse, 0, len(list))}
		for _, it := range list {
			resp.Items = append(resp.Items, itemToDTO(it))
		}
		writeJSON(w, http.StatusOK, resp)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) users(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload CreateUserRequest
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	candidate, err := userFromDTO(payload, h.hash)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	created, err := h.app.Users.Create(r.Context(), candidate)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, userToDTO(created))
}

func (h *handler) userResources(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[1] != "cart" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid user id: %w", err))
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addToCart(w, r, userID.String())
	case http.MethodGet:
		h.listCart(w, r, userID.String())
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) addToCart(w http.ResponseWriter, r *http.Request, userID string) {
	var payload AddToCartRequest
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.app.Users.AddItemToCart(r.Context(), cartItemFromDTO(payload, userID))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusConflict {
			metrics.CartAdds.WithLabelValues("rejected").Inc()
		} else {
			metrics.CartAdds.WithLabelValues("error").Inc()
		}
		writeError(w, status, err)
		return
	}
	metrics.CartAdds.WithLabelValues("added").Inc()

	writeJSON(w, http.StatusCreated, cartToDTO(cart))
}

func (h *handler) listCart(w http.ResponseWriter, r *http.Request, userID string) {
	cart, err := h.app.Users.ListCartItems(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToDTO(cart))
}

// statusForError maps the five domain errors to 409; anything else is a
// server-class failure.
func statusForError(err error) int {
	var itemExists *items.AlreadyExistsError
	var userExists *users.AlreadyExistsError
	switch {
	case errors.As(err, &itemExists),
		errors.As(err, &userExists),
		errors.Is(err, users.ErrDoesNotExist),
		errors.Is(err, items.ErrDoesNotExist),
		errors.Is(err, users.ErrItemAlreadyInCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
