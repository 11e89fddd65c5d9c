package database

import (
	"context"
	"encoding/json"
	"strings"

	"neu4g_backend/internal/config"
	"neu4g_backend/internal/util"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// InitFirestore 初始化文档库客户端。
// 优先使用服务账号文件，缺省时回退到 project_id / client_email / private_key 三元组。
func InitFirestore(ctx context.Context, cfg *config.FirestoreConfig) (*firestore.Client, error) {
	if !cfg.IsConfigured() {
		return nil, util.ConfigurationError("firestore")
	}

	if cfg.CredentialsFile != "" {
		client, err := firestore.NewClient(ctx, firestore.DetectProjectID,
			option.WithCredentialsFile(cfg.CredentialsFile))
		if err != nil {
			return nil, util.StoreError("init firestore client", err)
		}
		return client, nil
	}

	creds, err := serviceAccountJSON(cfg)
	if err != nil {
		return nil, util.StoreError("build firestore credentials", err)
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, util.StoreError("init firestore client", err)
	}
	return client, nil
}

func serviceAccountJSON(cfg *config.FirestoreConfig) ([]byte, error) {
	// 私钥经环境变量传递时会出现包裹引号和转义换行，统一修正
	key := strings.Trim(cfg.PrivateKey, "\"")
	key = strings.ReplaceAll(key, "\\n", "\n")

	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  key,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
}
