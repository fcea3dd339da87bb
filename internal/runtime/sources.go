package runtime

// Yul definitions of the runtime helpers. Storage slots are words; memory is
// byte addressed. Hash-derived slots use big-endian 32-byte words laid out in
// the scratch space at 0x00..0x3f.
var helperSources = [helperCount]string{
	Selector: `function Quartz$Selector() -> ret {
  ret := div(calldataload(0), 0x100000000000000000000000000000000000000000000000000000000)
}
`,
	DecodeAsAddress: `function Quartz$DecodeAsAddress(offset) -> ret {
  ret := Quartz$DecodeAsUInt(offset)
}
`,
	DecodeAsUInt: `function Quartz$DecodeAsUInt(offset) -> ret {
  ret := calldataload(add(4, mul(offset, 0x20)))
}
`,
	Return32Bytes: `function Quartz$Return32Bytes(v) {
  mstore(0, v)
  return(0, 0x20)
}
`,
	CheckNoValue: `function Quartz$CheckNoValue(_value) {
  if iszero(iszero(_value)) {
    revert(0, 0)
  }
}
`,
	IsValidCallerProtection: `function Quartz$IsValidCallerProtection(_address) -> ret {
  ret := eq(_address, caller())
}
`,
	IsCallerProtectionInArray: `function Quartz$IsCallerProtectionInArray(arrayOffset) -> ret {
  let size := sload(arrayOffset)
  let found := 0
  let _caller := caller()
  for { let i := 0 } and(lt(i, size), iszero(found)) { i := add(i, 1) } {
    if eq(sload(Quartz$StorageOffsetForKey(arrayOffset, i)), _caller) {
      found := 1
    }
  }
  ret := found
}
`,
	IsCallerProtectionInDictionary: `function Quartz$IsCallerProtectionInDictionary(dictionaryOffset) -> ret {
  let size := sload(dictionaryOffset)
  let arrayOffset := Quartz$StorageDictionaryKeysArrayOffset(dictionaryOffset)
  let found := 0
  let _caller := caller()
  for { let i := 1 } and(iszero(gt(i, size)), iszero(found)) { i := add(i, 1) } {
    let key := sload(Quartz$StorageOffsetForKey(arrayOffset, i))
    if eq(sload(Quartz$StorageOffsetForKey(dictionaryOffset, key)), _caller) {
      found := 1
    }
  }
  ret := found
}
`,
	AllocateMemory: `function Quartz$AllocateMemory(size) -> ret {
  ret := mload(0x40)
  mstore(0x40, add(ret, size))
}
`,
	ComputeOffset: `function Quartz$ComputeOffset(base, offset, mem) -> ret {
  switch iszero(mem)
  case 0 {
    ret := add(base, mul(offset, 32))
  }
  default {
    ret := add(base, offset)
  }
}
`,
	Load: `function Quartz$Load(ptr, mem) -> ret {
  switch iszero(mem)
  case 0 {
    ret := mload(ptr)
  }
  default {
    ret := sload(ptr)
  }
}
`,
	Store: `function Quartz$Store(ptr, val, mem) {
  switch iszero(mem)
  case 0 {
    mstore(ptr, val)
  }
  default {
    sstore(ptr, val)
  }
}
`,
	StorageOffsetForKey: `function Quartz$StorageOffsetForKey(offset, key) -> ret {
  mstore(0, key)
  mstore(32, offset)
  ret := keccak256(0, 64)
}
`,
	StorageDictionaryKeysArrayOffset: `function Quartz$StorageDictionaryKeysArrayOffset(dictionaryOffset) -> ret {
  mstore(0, dictionaryOffset)
  ret := keccak256(0, 32)
}
`,
	StorageDictionaryOffsetForKey: `function Quartz$StorageDictionaryOffsetForKey(dictionaryOffset, key) -> ret {
  let offsetForKey := Quartz$StorageOffsetForKey(dictionaryOffset, key)
  mstore(0, offsetForKey)
  let indexOffset := keccak256(0, 32)
  switch eq(sload(indexOffset), 0)
  case 1 {
    let keysArrayOffset := Quartz$StorageDictionaryKeysArrayOffset(dictionaryOffset)
    let index := add(sload(dictionaryOffset), 1)
    sstore(indexOffset, index)
    sstore(Quartz$StorageOffsetForKey(keysArrayOffset, index), key)
    sstore(dictionaryOffset, index)
  }
  ret := offsetForKey
}
`,
	StorageArrayOffset: `function Quartz$StorageArrayOffset(arrayOffset, index) -> ret {
  let arraySize := sload(arrayOffset)
  switch eq(arraySize, index)
  case 0 {
    if Quartz$IsInvalidSubscriptExpression(index, arraySize) {
      revert(0, 0)
    }
  }
  default {
    sstore(arrayOffset, Quartz$Add(arraySize, 1))
  }
  ret := Quartz$StorageOffsetForKey(arrayOffset, index)
}
`,
	StorageArrayReadOffset: `function Quartz$StorageArrayReadOffset(arrayOffset, index) -> ret {
  if Quartz$IsInvalidSubscriptExpression(index, sload(arrayOffset)) {
    revert(0, 0)
  }
  ret := Quartz$StorageOffsetForKey(arrayOffset, index)
}
`,
	StorageFixedSizeArrayOffset: `function Quartz$StorageFixedSizeArrayOffset(arrayOffset, index, arraySize) -> ret {
  if Quartz$IsInvalidSubscriptExpression(index, arraySize) {
    revert(0, 0)
  }
  ret := add(arrayOffset, index)
}
`,
	IsInvalidSubscriptExpression: `function Quartz$IsInvalidSubscriptExpression(index, arraySize) -> ret {
  ret := iszero(lt(index, arraySize))
}
`,
	RevertIfGreater: `function Quartz$RevertIfGreater(value, maximum) -> ret {
  if gt(value, maximum) {
    revert(0, 0)
  }
  ret := value
}
`,
	Add: `function Quartz$Add(a, b) -> ret {
  let c := add(a, b)
  if lt(c, a) {
    revert(0, 0)
  }
  ret := c
}
`,
	Sub: `function Quartz$Sub(a, b) -> ret {
  if gt(b, a) {
    revert(0, 0)
  }
  ret := sub(a, b)
}
`,
	Mul: `function Quartz$Mul(a, b) -> ret {
  switch iszero(a)
  case 1 {
    ret := 0
  }
  default {
    let c := mul(a, b)
    if iszero(eq(div(c, a), b)) {
      revert(0, 0)
    }
    ret := c
  }
}
`,
	Div: `function Quartz$Div(a, b) -> ret {
  if eq(b, 0) {
    revert(0, 0)
  }
  ret := div(a, b)
}
`,
	Power: `function Quartz$Power(b, e) -> ret {
  ret := 1
  for { let i := 0 } lt(i, e) { i := add(i, 1) } {
    ret := Quartz$Mul(ret, b)
  }
}
`,
	Send: `function Quartz$Send(_value, _address) {
  let ret := call(gas(), _address, _value, 0, 0, 0, 0)
  if iszero(ret) {
    revert(0, 0)
  }
}
`,
	FatalError: `function Quartz$FatalError() {
  revert(0, 0)
}
`,
}
