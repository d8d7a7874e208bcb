package dto

type GateStateResp struct {
	State string `json:"state"`
}

type VerifyMasterKeyReq struct {
	MasterKey string `json:"master_key" form:"master_key" validate:"max=1024"`
}

type EnterAdminReq struct{}
