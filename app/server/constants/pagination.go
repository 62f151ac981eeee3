package constants

// 列表接口统一的每页条数（文章、讨论、留言、搜索）
const PageLimit = 20

// 上传文件大小上限
const UploadMaxBytes = 10 << 20 // 10 MB
