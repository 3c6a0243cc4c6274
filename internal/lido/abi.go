package lido

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const lidoABIJSON = `[
  {
    "inputs": [{"internalType": "address", "name": "_referral", "type": "address"}],
    "name": "submit",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "_stETHAmount", "type": "uint256"}],
    "name": "wrap",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "_wstETHAmount", "type": "uint256"}],
    "name": "unwrap",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "_amounts", "type": "uint256[]"},
      {"internalType": "address", "name": "_owner", "type": "address"}
    ],
    "name": "requestWithdrawals",
    "outputs": [{"internalType": "uint256[]", "name": "requestIds", "type": "uint256[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "_amounts", "type": "uint256[]"},
      {"internalType": "address", "name": "_owner", "type": "address"}
    ],
    "name": "requestWithdrawalsWstETH",
    "outputs": [{"internalType": "uint256[]", "name": "requestIds", "type": "uint256[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "_amounts", "type": "uint256[]"},
      {"internalType": "address", "name": "_owner", "type": "address"},
      {
        "components": [
          {"internalType": "uint256", "name": "value", "type": "uint256"},
          {"internalType": "uint256", "name": "deadline", "type": "uint256"},
          {"internalType": "uint8", "name": "v", "type": "uint8"},
          {"internalType": "bytes32", "name": "r", "type": "bytes32"},
          {"internalType": "bytes32", "name": "s", "type": "bytes32"}
        ],
        "internalType": "struct WithdrawalQueue.PermitInput",
        "name": "_permit",
        "type": "tuple"
      }
    ],
    "name": "requestWithdrawalsWithPermit",
    "outputs": [{"internalType": "uint256[]", "name": "requestIds", "type": "uint256[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "_amounts", "type": "uint256[]"},
      {"internalType": "address", "name": "_owner", "type": "address"},
      {
        "components": [
          {"internalType": "uint256", "name": "value", "type": "uint256"},
          {"internalType": "uint256", "name": "deadline", "type": "uint256"},
          {"internalType": "uint8", "name": "v", "type": "uint8"},
          {"internalType": "bytes32", "name": "r", "type": "bytes32"},
          {"internalType": "bytes32", "name": "s", "type": "bytes32"}
        ],
        "internalType": "struct WithdrawalQueue.PermitInput",
        "name": "_permit",
        "type": "tuple"
      }
    ],
    "name": "requestWithdrawalsWstETHWithPermit",
    "outputs": [{"internalType": "uint256[]", "name": "requestIds", "type": "uint256[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "_requestIds", "type": "uint256[]"},
      {"internalType": "uint256[]", "name": "_hints", "type": "uint256[]"}
    ],
    "name": "claimWithdrawals",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	lidoABI     abi.ABI
	lidoABIOnce sync.Once
	lidoABIErr  error
)

// ABI returns the parsed ABI of every supported staking, wrapping and withdrawal call.
func ABI() (abi.ABI, error) {
	lidoABIOnce.Do(func() {
		lidoABI, lidoABIErr = abi.JSON(strings.NewReader(lidoABIJSON))
	})
	return lidoABI, lidoABIErr
}
