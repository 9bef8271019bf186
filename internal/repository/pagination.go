package repository

// pageBounds 计算分页切片区间，统一处理非法页码与越界。
func pageBounds(total, page, pageSize int) (int, int) {
	if pageSize <= 0 {
		return 0, total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return total, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}
