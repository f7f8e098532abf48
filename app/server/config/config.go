package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // 数据库的连接字符串（ postgres DSN 或 sqlite 文件路径）
		RedisConnectionString string // Redis 数据库的连接字符串，留空则禁用缓存
		UploadDir             string // 上传图片的存放目录
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效，但不影响使用
	}
}
