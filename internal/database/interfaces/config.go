package interfaces

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	Username               string `json:"username"`
	Password               string `json:"password"`
	Database               string `json:"database"`
	AuthDatabase           string `json:"authDatabase"`
	ReplicaSet             string `json:"replicaSet"`
	SSL                    bool   `json:"ssl"`
	MaxPoolSize            int    `json:"maxPoolSize"`
	MinPoolSize            int    `json:"minPoolSize"`
	ConnectTimeout         int    `json:"connectTimeout"`
	SocketTimeout          int    `json:"socketTimeout"`
	MaxIdleTime            int    `json:"maxIdleTime"`
	ServerSelectionTimeout int    `json:"serverSelectionTimeout"`
}
