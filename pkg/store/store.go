package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Stage journals how far a swap has progressed. The journal is a resumption
// hint only, ground truth is always re-read from the contract and the relay
// network.
type Stage uint

// dont reorder, persisted values depend on the sequence
const (
	Unknown Stage = iota
	Created
	Accepted
	InvoiceReady
	Locked
	Settled
	Refunded
	FailedToLock
	FailedToClaim
	FailedToRefund
)

type Event uint

const (
	UnknownEvent Event = iota
	Lock
	Claim
	Refund
)

type Swap struct {
	gorm.Model

	DTag        string `gorm:"index:,unique"`
	PaymentHash string `gorm:"index"`
	Secret      string
	Role        string
	Stage       Stage
	Error       string

	LockTxHash   string
	ClaimTxHash  string
	RefundTxHash string
}

type Store interface {
	// PutSwap journals a swap the daemon participates in, keyed by dTag.
	PutSwap(dTag, role string) error

	// UpdatePaymentHash records the hash once the invoice is published.
	UpdatePaymentHash(dTag, paymentHash string) error

	// PutSecret records a revealed preimage against its payment hash.
	PutSecret(paymentHash, secret string) error

	Secret(paymentHash string) (string, error)

	UpdateStage(dTag string, stage Stage, err error) error

	UpdateTxHash(dTag string, event Event, hash string) error

	SwapByDTag(dTag string) (Swap, error)

	SwapByPaymentHash(paymentHash string) (Swap, error)

	Swaps() ([]Swap, error)
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&Swap{}); err != nil {
		return nil, err
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDb.SetMaxIdleConns(5)
	sqlDb.SetMaxOpenConns(5)
	sqlDb.SetConnMaxIdleTime(10 * time.Minute)
	return &store{db: db}, nil
}

func (store *store) PutSwap(dTag, role string) error {
	swap := Swap{
		DTag:  dTag,
		Role:  role,
		Stage: Created,
	}
	return store.db.Create(&swap).Error
}

func (store *store) UpdatePaymentHash(dTag, paymentHash string) error {
	return store.db.Table("swaps").Where("d_tag = ?", dTag).
		Update("payment_hash", paymentHash).Error
}

func (store *store) PutSecret(paymentHash, secret string) error {
	return store.db.Table("swaps").Where("payment_hash = ?", paymentHash).
		Update("secret", secret).Error
}

func (store *store) Secret(paymentHash string) (string, error) {
	var swap Swap
	if err := store.db.Where("payment_hash = ?", paymentHash).First(&swap).Error; err != nil {
		return "", err
	}
	return swap.Secret, nil
}

func (store *store) UpdateStage(dTag string, stage Stage, err error) error {
	if err != nil {
		return store.db.Table("swaps").Where("d_tag = ?", dTag).
			Update("stage", stage).
			Update("error", err.Error()).
			Error
	}
	return store.db.Table("swaps").Where("d_tag = ?", dTag).Update("stage", stage).Error
}

func (store *store) UpdateTxHash(dTag string, event Event, hash string) error {
	tx := store.db.Table("swaps").Where("d_tag = ?", dTag)
	switch event {
	case Lock:
		return tx.Update("lock_tx_hash", hash).Error
	case Claim:
		return tx.Update("claim_tx_hash", hash).Error
	case Refund:
		return tx.Update("refund_tx_hash", hash).Error
	default:
		return fmt.Errorf("unknown event")
	}
}

func (store *store) SwapByDTag(dTag string) (Swap, error) {
	var swap Swap
	err := store.db.Where("d_tag = ?", dTag).First(&swap).Error
	return swap, err
}

func (store *store) SwapByPaymentHash(paymentHash string) (Swap, error) {
	var swap Swap
	err := store.db.Where("payment_hash = ?", paymentHash).First(&swap).Error
	return swap, err
}

func (store *store) Swaps() ([]Swap, error) {
	swaps := []Swap{}
	err := store.db.Order("created_at desc").Find(&swaps).Error
	return swaps, err
}
