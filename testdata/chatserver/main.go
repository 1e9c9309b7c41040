// Package main provides a minimal chat service for tests.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type payload struct {
	UserID        string          `json:"user_id"`
	Message       string          `json:"message"`
	AccountValues json.RawMessage `json:"account_values"`
}

type reply struct {
	Agent    string `json:"agent"`
	Response string `json:"response"`
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var in payload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if in.Message == "plain" {
			_, _ = w.Write([]byte("not json at all"))
			return
		}

		out := reply{Agent: "default", Response: fmt.Sprintf("Hello %s, you said: %s", in.UserID, in.Message)}
		if strings.Contains(strings.ToLower(in.Message), "pg") {
			out = reply{Agent: "broker", Response: "Here are PGs, rent from ₹9000. Want to schedule a visit?"}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
