package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"github.com/calgal7-del/1040-paydays/pkg/core/plan"
	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// The share-link resolver is a tiny sidecar: GET /s/{token} decodes a share
// token into the plan it carries. Browsers get bounced onto the main app's
// chart page instead of raw JSON. Keeping it separate lets short links stay
// up through API deploys.

type resolveResponse struct {
	Plan  plan.SharePayload          `json:"plan"`
	Input projection.ProjectionInput `json:"input"`
}

func appBaseURL() string {
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return "http://localhost:8080"
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")

	case strings.HasPrefix(path, "/s/"):
		handleShortLink(ctx, strings.TrimPrefix(path, "/s/"))

	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("not found")
	}
}

func handleShortLink(ctx *fasthttp.RequestCtx, token string) {
	payload, err := plan.DecodeShareToken(token)
	if err != nil {
		fmt.Printf("[SHARELINK] %v\n", err)
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("this share link is invalid or damaged")
		return
	}

	// Browsers land on the rendered chart; everything else gets the plan.
	if strings.Contains(string(ctx.Request.Header.Peek("Accept")), "text/html") {
		target := appBaseURL() + "/chart?t=" + url.QueryEscape(token)
		ctx.Redirect(target, fasthttp.StatusFound)
		return
	}

	body, err := json.Marshal(resolveResponse{
		Plan:  payload,
		Input: payload.FormValues.Sanitize(),
	})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func main() {
	godotenv.Load()

	port := os.Getenv("SHARELINK_PORT")
	if port == "" {
		port = "8081"
	}

	log.Printf("Share link resolver starting on port %s (app at %s)", port, appBaseURL())
	if err := fasthttp.ListenAndServe(":"+port, requestHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
