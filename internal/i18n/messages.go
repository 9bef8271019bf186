package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"submission.success":            "信息提交成功！感谢您的配合。",
		"error.bad_request":             "请求参数错误",
		"error.name_required":           "请填写姓名",
		"error.vehicle_type_invalid":    "请选择有效的车辆类型",
		"error.too_many_images":         "最多只能上传%d张图片",
		"error.not_image":               "只能上传图片文件",
		"error.upload_invalid":          "上传文件读取失败",
		"error.storage_unavailable":     "保存失败，请稍后重试",
		"error.statistics_failed":       "统计数据获取失败",
		"error.notice_empty":            "当前没有提示消息",
		"error.unauthorized":            "未登录或登录已过期",
		"error.login_invalid":           "用户名或密码错误",
		"error.login_failed":            "登录失败",
		"error.submission_fetch_failed": "获取登记数据失败",
		"error.export_no_data":          "暂无可导出的数据",
		"error.export_format_invalid":   "不支持的导出格式",
		"error.export_failed":           "导出失败",
		"error.too_many_requests":       "请求过于频繁，请稍后再试",
		"error.internal":                "服务器内部错误",
		"error.image_too_large":         "图片大小超出限制",
		"error.rate_limited":            "请求过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":  "限流服务暂不可用",
		"error.auth_header_missing":     "缺少认证信息",
		"error.auth_header_invalid":     "认证信息格式错误",
		"error.token_invalid":           "登录已失效，请重新登录",
	},
	LocaleTW: {
		"submission.success":            "資訊提交成功！感謝您的配合。",
		"error.bad_request":             "請求參數錯誤",
		"error.name_required":           "請填寫姓名",
		"error.vehicle_type_invalid":    "請選擇有效的車輛類型",
		"error.too_many_images":         "最多只能上傳%d張圖片",
		"error.not_image":               "只能上傳圖片檔案",
		"error.upload_invalid":          "上傳檔案讀取失敗",
		"error.storage_unavailable":     "儲存失敗，請稍後重試",
		"error.statistics_failed":       "統計資料取得失敗",
		"error.notice_empty":            "目前沒有提示訊息",
		"error.unauthorized":            "未登入或登入已過期",
		"error.login_invalid":           "使用者名稱或密碼錯誤",
		"error.login_failed":            "登入失敗",
		"error.submission_fetch_failed": "取得登記資料失敗",
		"error.export_no_data":          "暫無可匯出的資料",
		"error.export_format_invalid":   "不支援的匯出格式",
		"error.export_failed":           "匯出失敗",
		"error.too_many_requests":       "請求過於頻繁，請稍後再試",
		"error.internal":                "伺服器內部錯誤",
		"error.image_too_large":         "圖片大小超出限制",
		"error.rate_limited":            "請求過於頻繁，請 %d 秒後再試",
		"error.rate_limit_unavailable":  "限流服務暫不可用",
		"error.auth_header_missing":     "缺少認證資訊",
		"error.auth_header_invalid":     "認證資訊格式錯誤",
		"error.token_invalid":           "登入已失效，請重新登入",
	},
	LocaleEN: {
		"submission.success":            "Submitted successfully. Thank you for your cooperation.",
		"error.bad_request":             "Invalid request parameters",
		"error.name_required":           "Name is required",
		"error.vehicle_type_invalid":    "Please choose a valid vehicle type",
		"error.too_many_images":         "You can upload at most %d images",
		"error.not_image":               "Only image files can be uploaded",
		"error.upload_invalid":          "Failed to read the uploaded file",
		"error.storage_unavailable":     "Failed to save, please try again later",
		"error.statistics_failed":       "Failed to load statistics",
		"error.notice_empty":            "No notice at the moment",
		"error.unauthorized":            "Not logged in or session expired",
		"error.login_invalid":           "Invalid username or password",
		"error.login_failed":            "Login failed",
		"error.submission_fetch_failed": "Failed to load submissions",
		"error.export_no_data":          "No data to export",
		"error.export_format_invalid":   "Unsupported export format",
		"error.export_failed":           "Export failed",
		"error.too_many_requests":       "Too many requests, please try again later",
		"error.internal":                "Internal server error",
		"error.image_too_large":         "Image exceeds the size limit",
		"error.rate_limited":            "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":  "Rate limiter unavailable",
		"error.auth_header_missing":     "Missing authorization header",
		"error.auth_header_invalid":     "Malformed authorization header",
		"error.token_invalid":           "Session expired, please log in again",
	},
}
