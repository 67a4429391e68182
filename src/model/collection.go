package model

// Collection 集合表，由工厂注册，royalty 配置只能由治理层修改
type Collection struct {
	Id              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionId    int64  `gorm:"column:collection_id;uniqueIndex;not null"` // 工厂分配的集合 ID
	Address         string `gorm:"column:address;type:varchar(42);index"`     // 集合合约地址
	Name            string `gorm:"column:name;type:varchar(128);not null"`
	Symbol          string `gorm:"column:symbol;type:varchar(32)"`
	Creator         string `gorm:"column:creator;type:varchar(42);not null"` // 创建者地址
	RoyaltyBps      int64  `gorm:"column:royalty_bps;not null;default:0"`    // 版税 (上限 1000)
	RoyaltyReceiver string `gorm:"column:royalty_receiver;type:varchar(42)"` // 版税接收地址
	ChainId         int64  `gorm:"column:chain_id;not null"`
	CreateTime      int64  `gorm:"column:create_time;autoCreateTime"`
	UpdateTime      int64  `gorm:"column:update_time;autoUpdateTime"`
}

func (Collection) TableName() string {
	return "es_collection"
}

// Item 集合内的单个 token，所有权与授权状态由结算引擎维护
type Item struct {
	Id              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionId    int64  `gorm:"column:collection_id;uniqueIndex:uk_item;not null"`
	TokenId         string `gorm:"column:token_id;uniqueIndex:uk_item;type:varchar(128);not null"`
	Owner           string `gorm:"column:owner;type:varchar(42);index;not null"`
	Approved        bool   `gorm:"column:approved;not null;default:false"`     // 是否已授权引擎转移
	EscrowAuctionId int64  `gorm:"column:escrow_auction_id;not null;default:0"` // 托管中的拍卖 ID，0 表示未托管
	CreateTime      int64  `gorm:"column:create_time;autoCreateTime"`
	UpdateTime      int64  `gorm:"column:update_time;autoUpdateTime"`
}

func (Item) TableName() string {
	return "es_item"
}
