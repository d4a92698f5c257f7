package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tieubaoca/litellm-chat/handler"
	"github.com/tieubaoca/litellm-chat/service"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.reply(prompt)
}

func (g *fakeGenerator) calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

var _ = Describe("GenerateHandler", func() {
	var (
		gen    *fakeGenerator
		router *gin.Engine
	)

	post := func(path, body string) (int, map[string]string) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Header().Get("Content-Type")).To(HavePrefix("application/json"))
		var out map[string]string
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		return rec.Code, out
	}

	BeforeEach(func() {
		gen = &fakeGenerator{reply: func(string) (string, error) { return "I'm doing well!", nil }}
		router = handler.NewRouter(gen)
	})

	It("returns the generated text", func() {
		code, body := post("/generate", `{"message": "Hello, how are you?"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(Equal(map[string]string{"response": "I'm doing well!"}))
		Expect(gen.calls()).To(Equal([]string{"Hello, how are you?"}))
	})

	It("passes the exact input through", func() {
		gen.reply = func(p string) (string, error) { return strings.ToUpper(p), nil }
		code, body := post("/generate", `{"message": "ping\tpong"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["response"]).To(Equal("PING\tPONG"))
	})

	It("trims surrounding whitespace before generating", func() {
		_, _ = post("/generate", `{"message": "  hi there \n"}`)
		Expect(gen.calls()).To(Equal([]string{"hi there"}))
	})

	It("serves /chat as an alias", func() {
		code, body := post("/chat", `{"message": "Hello"}`)
		Expect(code).To(Equal(http.StatusOK))
		Expect(body).To(HaveKeyWithValue("response", "I'm doing well!"))
	})

	It("maps generator failures to 500 with the failure message", func() {
		gen.reply = func(string) (string, error) { return "", errors.New("model unavailable") }
		code, body := post("/generate", `{"message": "Tell me a joke."}`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(body).To(Equal(map[string]string{"detail": "model unavailable"}))
	})

	It("uses the GenerationError message as detail", func() {
		gen.reply = func(string) (string, error) {
			return "", &service.GenerationError{Provider: "openai", Message: "rate limited", Err: errors.New("HTTP 429")}
		}
		code, body := post("/generate", `{"message": "x"}`)
		Expect(code).To(Equal(http.StatusInternalServerError))
		Expect(body["detail"]).To(Equal("rate limited"))
	})

	DescribeTable("rejects bad bodies before generating",
		func(body string, code int, detail string) {
			gotCode, gotBody := post("/generate", body)
			Expect(gotCode).To(Equal(code))
			Expect(gotBody).To(Equal(map[string]string{"detail": detail}))
			Expect(gen.calls()).To(BeEmpty())
		},
		Entry("missing message", `{}`, http.StatusUnprocessableEntity, "The 'message' field is required."),
		Entry("null message", `{"message": null}`, http.StatusUnprocessableEntity, "The 'message' field is required."),
		Entry("number message", `{"message": 42}`, http.StatusUnprocessableEntity, "The 'message' field must be a string."),
		Entry("malformed json", `{"message": "hi"`, http.StatusUnprocessableEntity, "Invalid request body"),
		Entry("trailing garbage", `{"message": "hi"} garbage`, http.StatusUnprocessableEntity, "Invalid request body"),
		Entry("two values", `{"message": "hi"}{"message": "again"}`, http.StatusUnprocessableEntity, "Invalid request body"),
		Entry("empty body", ``, http.StatusUnprocessableEntity, "Invalid request body"),
		Entry("not an object", `["hi"]`, http.StatusUnprocessableEntity, "Invalid request body"),
		Entry("empty message", `{"message": ""}`, http.StatusBadRequest, "The 'message' field cannot be empty."),
		Entry("blank message", `{"message": "   "}`, http.StatusBadRequest, "The 'message' field cannot be empty."),
	)
})

var _ = Describe("Router", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = handler.NewRouter(service.NewEchoGenerator())
	})

	It("reports health", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("OK"))
	})

	It("answers CORS preflight", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/generate", nil))
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(rec.Header().Get("Access-Control-Allow-Headers")).To(Equal("Content-Type"))
		Expect(rec.Header().Get("Access-Control-Max-Age")).To(Equal("600"))
	})

	It("works end to end with the echo backend", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"message":"Hello"}`))
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"response":"Echo: Hello"}`))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(rec.Header().Get("Access-Control-Max-Age")).To(BeEmpty())
	})
})
