package repository

import "errors"

var ErrInvalidDeliveryData = errors.New("invalid delivery data")
