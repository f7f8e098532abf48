package constants

// 上传图片
const (
	UploadPathPrefix = "/uploads/" // 托管图片的公开路径前缀，用于区分外链图片
	UploadDefaultExt = ".jpg"      // 原始文件名没有扩展名时的兜底

	PlaceholderImageURL = "https://placehold.co/300x300?text=No+Image"
)
