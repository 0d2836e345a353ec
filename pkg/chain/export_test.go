package chain

// TransferEventSig exposes the Transfer log topic to the external test package.
var TransferEventSig = transferEventSig
