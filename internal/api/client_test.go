package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KayTee1/E-commerce/internal/api/dto"
	"github.com/KayTee1/E-commerce/internal/config"
	"github.com/KayTee1/E-commerce/internal/model"
)

// ==================== 测试辅助函数 ====================

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.APIConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, config.AuthConfig{Username: "kay", Password: "secret"})
	return client, srv
}

func signTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("签发测试 Token 失败: %v", err)
	}
	return signed
}

// ==================== 鉴权测试 ====================

func TestClient_LoginStoresToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" || r.Method != http.MethodPost {
			t.Errorf("意外请求: %s %s", r.Method, r.URL.Path)
		}
		var req dto.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "kay" {
			t.Errorf("username = %q, want kay", req.Username)
		}
		json.NewEncoder(w).Encode(dto.AuthResponse{Token: "tok-1", UserID: "u1", Username: "kay"})
	})

	out, err := client.Login(context.Background(), "kay", "secret")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if out.UserID != "u1" || client.Token() != "tok-1" {
		t.Errorf("登录后应保存 Token, got %+v token=%q", out, client.Token())
	}
}

func TestClient_AuthExpiry(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := client.AuthExpiry(); err == nil {
		t.Error("无 Token 时应返回错误")
	}

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	client.SetToken(signTestToken(t, exp))

	got, err := client.AuthExpiry()
	if err != nil {
		t.Fatalf("解析过期时间失败: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("过期时间 = %v, want %v", got, exp)
	}
}

func TestClient_RenewUsesConfiguredCreds(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "kay" || req.Password != "secret" {
			t.Errorf("续期应使用配置凭据, got %+v", req)
		}
		json.NewEncoder(w).Encode(dto.AuthResponse{Token: "tok-2"})
	})

	if err := client.Renew(context.Background()); err != nil {
		t.Fatalf("续期失败: %v", err)
	}
	if client.Token() != "tok-2" {
		t.Errorf("续期后 Token = %q, want tok-2", client.Token())
	}
}

// ==================== 分类接口测试 ====================

func TestClient_Categories(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Category{
			{ID: "1", Name: "Tools"},
			{ID: "2", Name: "Garden"},
		})
	})

	got, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("拉取分类失败: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Tools" {
		t.Errorf("分类解析错误: %v", got)
	}
}

func TestClient_CreateCategorySendsBearer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		var req dto.CreateCategoryRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Category{ID: "9", Name: req.Name})
	})
	client.SetToken("tok-1")

	got, err := client.CreateCategory(context.Background(), "Garden")
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if got.ID != "9" || got.Name != "Garden" {
		t.Errorf("创建结果 = %+v", got)
	}
}

func TestClient_CreateCategoryNon2xx(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.CreateCategory(context.Background(), "Garden"); err == nil {
		t.Error("非 2xx 应视为创建失败")
	}
}

// ==================== 商品接口测试 ====================

func TestClient_ProductsCategoryFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("category"); got != "Tools" {
			t.Errorf("category 参数 = %q, want Tools", got)
		}
		json.NewEncoder(w).Encode([]model.Listing{{ID: "p1", Title: "Hammer"}})
	})

	got, err := client.Products(context.Background(), "Tools")
	if err != nil {
		t.Fatalf("拉取商品失败: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("商品解析错误: %v", got)
	}
}

// 后端 4xx 但带结构化回执：透传 message 而不是报错
func TestClient_PostListingStructuredRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.SubmitResult{Success: false, Message: "unknown category: Ghost"})
	})

	res, err := client.PostListing(context.Background(), &dto.ListingPayload{Title: "Bike"})
	if err != nil {
		t.Fatalf("结构化回执不应升级为错误: %v", err)
	}
	if res.Success || res.Message != "unknown category: Ghost" {
		t.Errorf("回执 = %+v", res)
	}
}

// 后端 5xx 且无结构化回执：升级为错误
func TestClient_PostListingUnstructuredFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.PostListing(context.Background(), &dto.ListingPayload{Title: "Bike"}); err == nil {
		t.Error("无结构化回执的失败应返回错误")
	}
}

func TestClient_EditListingUsesPut(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/products/p1" {
			t.Errorf("意外请求: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.SubmitResult{Success: true, Message: "Updated"})
	})

	res, err := client.EditListing(context.Background(), "p1", &dto.ListingPayload{Title: "Bike"})
	if err != nil {
		t.Fatalf("编辑失败: %v", err)
	}
	if !res.Success || res.Message != "Updated" {
		t.Errorf("回执 = %+v", res)
	}
}
