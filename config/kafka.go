package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostPublished        string `mapstructure:"postPublished" json:"postPublished" yaml:"postPublished"`                      //  帖子首次发布
	PostDeleted          string `mapstructure:"postDeleted" json:"postDeleted" yaml:"postDeleted"`                            //  帖子删除
	CommentCreated       string `mapstructure:"commentCreated" json:"commentCreated" yaml:"commentCreated"`                   //  新评论，供审核服务消费
	CommentAuditApproved string `mapstructure:"commentAuditApproved" json:"commentAuditApproved" yaml:"commentAuditApproved"` //  评论审核通过
	CommentAuditRejected string `mapstructure:"commentAuditRejected" json:"commentAuditRejected" yaml:"commentAuditRejected"` //  评论审核拒绝
	UserLoggedIn         string `mapstructure:"userLoggedIn" json:"userLoggedIn" yaml:"userLoggedIn"`                         //  外部登录事件(例如网关 SSO)
}
