package config

import (
	"fmt"
	"os"
)

// Config는 앱 전체 설정
type Config struct {
	Port string // 서버 포트

	MongoURI string // 문서 DB 접속 URI
	MongoDB  string // DB 이름

	JWTSecret string // 외부 인증 서비스가 서명한 JWT 검증용 시크릿

	StoreID string // 단일 상점 배포의 상점 ID

	// NICEPAY 시크릿은 기동 필수가 아니다.
	// 없으면 결제 웹훅이 요청 시점에 NICEPAY_KEY_MISSING으로 실패한다 (fail closed).
	NicepayClientID  string
	NicepaySecretKey string
	NicepayAPIURL    string

	GoEnv string // dev/prod
	FEURL string // 프론트 URL (CORS)
}

// Load는 환경변수에서 설정을 읽는다.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		MongoURI: os.Getenv("MONGODB_URI"),
		MongoDB:  os.Getenv("MONGODB_DB"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StoreID: os.Getenv("STORE_ID"),

		NicepayClientID:  os.Getenv("NICEPAY_CLIENT_ID"),
		NicepaySecretKey: os.Getenv("NICEPAY_SECRET_KEY"),
		NicepayAPIURL:    os.Getenv("NICEPAY_API_URL"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "storefront"
	}
	if cfg.StoreID == "" {
		cfg.StoreID = "default"
	}
	if cfg.NicepayAPIURL == "" {
		cfg.NicepayAPIURL = "https://api.nicepay.co.kr"
	}

	// 필수 체크
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
