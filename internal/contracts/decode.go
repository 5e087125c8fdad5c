package contracts

import (
	"fmt"
	"math/big"
)

// Помощники декодирования выходов View: биндинги знают формы из ABI,
// несоответствие означает расхождение с деплоенным контрактом.

func oneBig(vals []interface{}, err error) (*big.Int, error) {
	if err != nil {
		return nil, err
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("неожиданный тип выхода: %T", vals[0])
	}
	return v, nil
}

func oneBool(vals []interface{}, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	v, ok := vals[0].(bool)
	if !ok {
		return false, fmt.Errorf("неожиданный тип выхода: %T", vals[0])
	}
	return v, nil
}

func bigSlice(vals []interface{}, err error) ([]*big.Int, error) {
	if err != nil {
		return nil, err
	}
	v, ok := vals[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("неожиданный тип выхода: %T", vals[0])
	}
	return v, nil
}

func asBig(v interface{}) (*big.Int, error) {
	b, ok := v.(*big.Int)
	if !ok {
		return nil, errUnexpected(v)
	}
	return b, nil
}

func errUnexpected(v interface{}) error {
	return fmt.Errorf("неожиданный тип выхода: %T", v)
}
