package gcs

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSignedReadURLSuccess(t *testing.T) {
	t.Parallel()

	key := mustGenerateKey(t)
	client := &Client{
		defaultBucket: "wigmatch-assets",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  key,
		},
	}

	object := "variants/lace-front/hero.png"
	urlStr, err := client.SignedReadURL("wigmatch-assets", object, 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedReadURL returned error: %v", err)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		t.Fatalf("parse signed read url: %v", err)
	}
	if !strings.EqualFold(parsed.Host, "storage.googleapis.com") {
		t.Fatalf("unexpected host %s", parsed.Host)
	}

	values := parsed.Query()
	if got := values.Get("GoogleAccessId"); got != "signer@example.com" {
		t.Fatalf("unexpected GoogleAccessId %q", got)
	}

	expireParam := values.Get("Expires")
	if expireParam == "" {
		t.Fatal("Expires missing")
	}
	expiration, err := strconv.ParseInt(expireParam, 10, 64)
	if err != nil {
		t.Fatalf("parse expires: %v", err)
	}
	expireParam = strconv.FormatInt(expiration, 10)

	signature := values.Get("Signature")
	if signature == "" {
		t.Fatal("signature missing")
	}

	data := []byte("GET\n\n\n" + expireParam + "\n/" + "wigmatch-assets" + "/" + object)
	hash := sha256.Sum256(data)

	rawSig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, hash[:], rawSig); err != nil {
		t.Fatalf("verify read signature: %v", err)
	}
}

func TestSignedReadURLErrors(t *testing.T) {
	t.Parallel()

	client := &Client{
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  mustGenerateKey(t),
		},
		defaultBucket: "wigmatch-assets",
	}

	cases := []struct {
		name              string
		bucket            string
		object            string
		expires           time.Duration
		forceClearDefault bool
	}{
		{"missing bucket", "", "object", time.Minute, true},
		{"missing object", "wigmatch-assets", "", time.Minute, false},
		{"negative ttl", "wigmatch-assets", "object", -time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			origBucket := client.defaultBucket
			if tc.forceClearDefault {
				client.defaultBucket = ""
			}
			defer func() {
				client.defaultBucket = origBucket
			}()
			if _, err := client.SignedReadURL(tc.bucket, tc.object, tc.expires); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}

	emptyClient := &Client{}
	if _, err := emptyClient.SignedReadURL("", "object", time.Minute); err == nil {
		t.Fatal("expected error without service account")
	}
}

func TestImageURLSignsWithServiceAccount(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "wigmatch-assets",
		signTTL:       10 * time.Minute,
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  mustGenerateKey(t),
		},
	}

	urlStr, err := client.ImageURL("variants/bob/hero.png")
	if err != nil {
		t.Fatalf("ImageURL returned error: %v", err)
	}
	if !strings.Contains(urlStr, "Signature=") {
		t.Fatalf("expected signed url, got %s", urlStr)
	}
}

func TestImageURLFallsBackToPublicURL(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "wigmatch-assets"}

	urlStr, err := client.ImageURL("variants/bob/hero.png")
	if err != nil {
		t.Fatalf("ImageURL returned error: %v", err)
	}
	want := "https://storage.googleapis.com/wigmatch-assets/variants/bob/hero.png"
	if urlStr != want {
		t.Fatalf("unexpected public url %s", urlStr)
	}

	if _, err := client.ImageURL(""); err == nil {
		t.Fatal("expected error for empty object")
	}
}

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func TestPingChecksBucketListing(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "wigmatch-assets",
		tokenSource: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			if req.Method != http.MethodGet {
				t.Fatalf("expected GET, got %s", req.Method)
			}
			if req.Header.Get("Authorization") != "Bearer token" {
				t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
			}
			if !strings.Contains(req.URL.Path, "wigmatch-assets") {
				t.Fatalf("unexpected path %s", req.URL.Path)
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"items":[]}`)),
				Header:     http.Header{},
			}
		})},
	}

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestPingSurfacesStorageErrors(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "wigmatch-assets",
		tokenSource: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusForbidden,
				Body:       io.NopCloser(strings.NewReader(`{"error":"denied"}`)),
				Header:     http.Header{},
			}
		})},
	}

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping failure")
	}
}

func mustGenerateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return key
}
