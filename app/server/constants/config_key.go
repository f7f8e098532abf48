package constants

const (
	ConfigKeyAffiliateIntro = "affiliate_intro" // 全站推广链接文案
)
