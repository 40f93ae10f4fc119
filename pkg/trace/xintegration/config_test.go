package xintegration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/tracekit/pkg/trace/xorigin"
)

func boolPtr(v bool) *bool { return &v }

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "空模式列表返回错误",
			cfg:     Config{},
			wantErr: ErrEmptyOriginPatterns,
		},
		{
			name: "正常配置",
			cfg:  Config{OriginPatterns: []string{"api.example.com"}},
		},
		{
			name: "开关全部显式关闭仍然合法",
			cfg: Config{
				OriginPatterns:   []string{"api.example.com"},
				TraceCaller:      boolPtr(false),
				TraceDo:          boolPtr(false),
				AutoStartOnReady: boolPtr(false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_FlagDefaults(t *testing.T) {
	// 未设置的开关视为启用
	var cfg Config
	assert.True(t, cfg.traceCaller())
	assert.True(t, cfg.traceDo())
	assert.True(t, cfg.autoStartOnReady())

	cfg.TraceCaller = boolPtr(false)
	cfg.TraceDo = boolPtr(false)
	cfg.AutoStartOnReady = boolPtr(false)
	assert.False(t, cfg.traceCaller())
	assert.False(t, cfg.traceDo())
	assert.False(t, cfg.autoStartOnReady())

	cfg.TraceCaller = boolPtr(true)
	assert.True(t, cfg.traceCaller())
}

func TestBuildWhitelist(t *testing.T) {
	t.Run("编译全部模式形态", func(t *testing.T) {
		w, err := buildWhitelist(Config{
			OriginPatterns: []string{"api.example.com", "*.internal.corp", "10.0.0.0/8"},
		})
		require.NoError(t, err)

		assert.True(t, w.Eligible("https://api.example.com/v1/users"))
		assert.True(t, w.Eligible("https://billing.internal.corp/invoice"))
		assert.True(t, w.Eligible("http://10.1.2.3:8080/health"))
		assert.False(t, w.Eligible("https://third-party.example.org/cdn"))
	})

	t.Run("无效模式返回错误", func(t *testing.T) {
		_, err := buildWhitelist(Config{OriginPatterns: []string{""}})
		assert.ErrorIs(t, err, xorigin.ErrInvalidPattern)
	})

	t.Run("启用判定缓存", func(t *testing.T) {
		w, err := buildWhitelist(Config{
			OriginPatterns: []string{"api.example.com"},
			CacheSize:      128,
			CacheTTL:       time.Minute,
		})
		require.NoError(t, err)
		// 重复判定命中缓存，结果保持一致
		assert.True(t, w.Eligible("https://api.example.com/v1"))
		assert.True(t, w.Eligible("https://api.example.com/v1"))
	})
}
