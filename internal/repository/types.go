package repository

// SubmissionListFilter 后台查询登记记录的过滤条件
type SubmissionListFilter struct {
	Page        int
	PageSize    int
	Search      string
	VehicleType string
	NewestFirst bool
}
