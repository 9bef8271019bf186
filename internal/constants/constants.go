package constants

// 车辆类型（表单下拉固定枚举）
const (
	VehicleTypeSmallCar   = "小型汽车"
	VehicleTypeLargeCar   = "大型汽车"
	VehicleTypeMotorcycle = "摩托车"
	VehicleTypeTricycle   = "三轮车"
	VehicleTypeElectric   = "电动自行车"
	VehicleTypeTractor    = "拖拉机"
	VehicleTypeOther      = "其他"
)

// VehicleTypes 表单可选车辆类型，按下拉顺序排列
var VehicleTypes = []string{
	VehicleTypeSmallCar,
	VehicleTypeLargeCar,
	VehicleTypeMotorcycle,
	VehicleTypeTricycle,
	VehicleTypeElectric,
	VehicleTypeTractor,
	VehicleTypeOther,
}

// 使用性质
const (
	UsageTypePrivate    = "非营运"
	UsageTypeCommercial = "营运"
	UsageTypeFarm       = "农用"
	UsageTypeOther      = "其他"
)

// UsageTypes 表单可选使用性质
var UsageTypes = []string{
	UsageTypePrivate,
	UsageTypeCommercial,
	UsageTypeFarm,
	UsageTypeOther,
}

// 提示消息类型
const (
	NoticeKindSuccess = "success"
	NoticeKindError   = "error"
)

// 存储后端
const (
	StorageBackendMemory   = "memory"
	StorageBackendFile     = "file"
	StorageBackendDatabase = "database"
	StorageBackendRedis    = "redis"
)

// 队列与任务
const (
	QueueDefault             = "default"
	TaskSubmissionCreated    = "submission:created"
	DefaultSubmissionSlotKey = "trafficSubmissions"
)

// 导出格式
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// IsVehicleType 判断是否为受支持的车辆类型
func IsVehicleType(value string) bool {
	for _, item := range VehicleTypes {
		if item == value {
			return true
		}
	}
	return false
}
