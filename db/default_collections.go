package db

// DefaultCollections is the built-in book of well known mainnet
// collections. Supply 0 means unknown and leaves enumeration open-ended.
var DefaultCollections = []CollectionDesc{
	{
		Name:    "Azuki",
		Address: "0xed5af388653567af2f388e6224dc7c4b3241c544",
		BaseURI: "https://ikzttp.mypinata.cloud/ipfs/QmQFkLSQysj94s5GvTHPyzTxrawwtjgiiYS2TBLgrvw8CW/",
		Supply:  10000,
	},
	{
		Name:    "Beanz",
		Address: "0x306b1ea3ecdf94ab739f1910bbda052ed4a9f949",
		BaseURI: "https://ikzttp.mypinata.cloud/ipfs/QmPZKyuRw4nQTD6S6R5HaNAXwoQVMj8YydDmad3rC985WZ/",
		Supply:  19950,
	},
	{
		Name:    "Bored Ape Chemistry Club",
		Address: "0x22c36bfdcef207f9c0cc941936eff94d4246d14a",
		BaseURI: "https://ipfs.io/ipfs/QmdtARLUPQeqXrVcNzQuRqr9UCFoFvn76X9cdTczt4vqfw/",
	},
	{
		Name:    "Bored Ape Kennel Club",
		Address: "0xba30e5f9bb24caa003e9f2f0497ad287fdf95623",
		BaseURI: "https://ipfs.io/ipfs/QmTDcCdt3yb6mZitzWBmQr65AW6Wska295Dg9nbEYpSUDR/",
		Supply:  9602,
	},
	{
		Name:    "Bored Ape Yacht Club",
		Address: "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		BaseURI: "https://ipfs.io/ipfs/QmeSjSinHpPnmXmspMjwiXyN6zS4E9zccariGR3jxcaWtq/",
		Supply:  10000,
	},
	{
		Name:    "Clone X",
		Address: "0x49cf6f5d44e70224e2e23fdcdd2c053f30ada28b",
		BaseURI: "https://clonex-assets.rtfkt.com/",
		Supply:  19311,
	},
	{
		Name:    "Cool Cats NFT",
		Address: "0x1a92f7381b9f03921564a437210bb9396471050c",
		BaseURI: "https://api.coolcatsnft.com/cat/",
		Supply:  9941,
	},
	{
		Name:    "CrypToadz by GREMPLIN",
		Address: "0x1cb1a5e65610aeff2551a50f76a87a7d3fb649c6",
		BaseURI: "https://arweave.net/OVAmf1xgB6atP0uZg1U0fMd0Lw6DlsVqdvab-WTXZ1Q/",
		Supply:  7025,
	},
	{
		Name:    "DeadFellaz",
		Address: "0x2acab3dea77832c09420663b0e1cb386031ba17b",
		BaseURI: "https://api.deadfellaz.io/traits/",
		Supply:  10000,
	},
	{
		Name:    "Doodles",
		Address: "0x8a90cab2b38dba80c64b7734e58ee1db38b8992e",
		BaseURI: "https://ipfs.io/ipfs/QmPMc4tcBsMqLRuCQtPmPe84bpSjrC3Ky7t3JWuHXYB4aS/",
		Supply:  10000,
	},
	{
		Name:    "Hape Prime",
		Address: "0x4db1f25d3d98600140dfc18deb7515be5bd293af",
		BaseURI: "https://meta.hapeprime.com/",
		Supply:  8192,
	},
	{
		Name:       "Meebits",
		Address:    "0x7bd29408f11d2bfc23c34f18275bbf23bb716bc7",
		BaseURI:    "https://meebits.larvalabs.com/meebit/",
		Supply:     20000,
		StartToken: 1,
	},
	{
		Name:       "MekaVerse",
		Address:    "0x9a534628b4062e123ce7ee2222ec20b86e16ca8f",
		BaseURI:    "https://ipfs.io/ipfs/Qmcob1MaPTXUZt5MztHEgsYhrf7R6G7wV8hpcweL8nEfgU/meka/",
		Supply:     8888,
		StartToken: 1,
	},
	{
		Name:    "Moonbirds",
		Address: "0x23581767a106ae21c074b2276d25e5c3e136a68b",
		BaseURI: "https://live---metadata-5covpqijaa-uc.a.run.app/metadata/",
		Supply:  10000,
	},
	{
		Name:    "Mutant Ape Yacht Club",
		Address: "0x60e4d786628fea6478f785a6d7e704777c86a7c6",
		BaseURI: "https://boredapeyachtclub.com/api/mutants/",
		Supply:  19423,
	},
	{
		Name:       "ON1 Force",
		Address:    "0x3bf2922f4520a8ba0c2efc3d2a1539678dad5e9d",
		BaseURI:    "https://ipfs.io/ipfs/QmXgSuLPGuxxRuAana7JdoWmaS25oAcXv3x2pYMN9kVfg3/",
		Supply:     7777,
		StartToken: 1,
	},
	{
		Name:    "Otherdeed for Otherside",
		Address: "0x34d85c9cdeb23fa97cb08333b511ac86e1c4e258",
		BaseURI: "https://api.otherside.xyz/lands/",
		Supply:  100000,
	},
	{
		Name:    "Pudgy Penguins",
		Address: "0xbd3531da5cf5857e7cfaa92426877b022e612cf8",
		BaseURI: "https://ipfs.io/ipfs/QmWXJXRdExse2YHRY21Wvh4pjRxNRQcWVhcKw4DLVnqGqs/",
		Supply:  8888,
	},
	{
		Name:       "VeeFriends",
		Address:    "0xa3aee8bce55beea1951ef834b99f3ac60d1abeeb",
		BaseURI:    "https://erc721.veefriends.com/api/metadata/0xa3aee8bce55beea1951ef834b99f3ac60d1abeeb/",
		Supply:     10255,
		StartToken: 1,
	},
	{
		Name:    "World of Women",
		Address: "0xe785e82358879f061bc3dcac6f0444462d4b5330",
		BaseURI: "https://wow-prod-nftribe.s3.eu-west-2.amazonaws.com/t/",
		Supply:  10000,
	},
}
