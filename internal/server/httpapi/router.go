package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the full route table. Collection routes share one handler
// pair; the kind comes from the path.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authenticate)

	authed.HandleFunc("/users/{id}", s.requireSelf("id", s.handleGetUser)).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id}", s.requireSelf("id", s.handleUpdateUser)).Methods(http.MethodPut)

	authed.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{userId}", s.requireSelf("userId", s.handleListOrders)).Methods(http.MethodGet)

	for _, kind := range []string{"cart", "favs", "compare"} {
		authed.HandleFunc("/"+kind+"/{userId}", s.requireSelf("userId", s.handleGetCollection(kind))).Methods(http.MethodGet)
		authed.HandleFunc("/"+kind+"/{userId}", s.requireSelf("userId", s.handlePutCollection(kind))).Methods(http.MethodPut)
	}

	return r
}
